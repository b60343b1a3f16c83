package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/storage"
)

// SaveUser создаёт нового пользователя и возвращает присвоенный БД идентификатор.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) (int64, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UserByUsername находит пользователя по username.
func (s *Storage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.postgres.UserByUsername"

	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// ListUsers возвращает всех пользователей, кроме exceptID, свежие первыми,
// с признаком подписки exceptID на каждого.
func (s *Storage) ListUsers(ctx context.Context, exceptID int64) ([]models.UserSummary, error) {
	const op = "storage.postgres.ListUsers"

	query := `
		SELECT u.id, u.username, u.created_at,
		       f.follower_id IS NOT NULL AS is_following
		FROM users u
		LEFT JOIN follows f ON u.id = f.followee_id AND f.follower_id = $1
		WHERE u.id != $1
		ORDER BY u.created_at DESC, u.id DESC
	`

	rows, err := s.db.Query(ctx, query, exceptID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if scanErr := rows.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.IsFollowing); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return users, nil
}
