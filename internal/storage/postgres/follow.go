package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/storage"
)

// SaveFollow создаёт подписку follower -> followee.
// Дубликат первичного ключа — ErrAlreadyExists; нарушение FK по followee
// (нет такого пользователя) — ErrNotFound.
func (s *Storage) SaveFollow(ctx context.Context, followerID, followeeID int64) error {
	const op = "storage.postgres.SaveFollow"

	query := `
		INSERT INTO follows(follower_id, followee_id)
		VALUES ($1, $2)
	`

	_, err := s.db.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteFollow удаляет подписку; если её не было — ErrNotFound.
func (s *Storage) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	const op = "storage.postgres.DeleteFollow"

	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followee_id = $2
	`

	cmdTag, err := s.db.Exec(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListFollowing возвращает подписки пользователя, свежие первыми.
func (s *Storage) ListFollowing(ctx context.Context, userID int64) ([]models.FollowedUser, error) {
	const op = "storage.postgres.ListFollowing"

	query := `
		SELECT u.id, u.username, f.created_at
		FROM users u
		INNER JOIN follows f ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var following []models.FollowedUser
	for rows.Next() {
		var fu models.FollowedUser
		if scanErr := rows.Scan(&fu.ID, &fu.Username, &fu.FollowedAt); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		fu.FollowedAt = fu.FollowedAt.UTC()
		following = append(following, fu)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return following, nil
}
