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

// SavePost создаёт запись и возвращает её вместе с username автора.
func (s *Storage) SavePost(ctx context.Context, userID int64, content string) (*models.Post, error) {
	const op = "storage.postgres.SavePost"

	query := `
		WITH new_post AS (
			INSERT INTO posts(user_id, content)
			VALUES ($1, $2)
			RETURNING id, user_id, content, created_at
		)
		SELECT np.id, np.user_id, u.username, np.content, np.created_at
		FROM new_post np
		JOIN users u ON u.id = np.user_id
	`

	var post models.Post
	err := s.db.QueryRow(ctx, query, userID, content).Scan(
		&post.ID,
		&post.UserID,
		&post.Username,
		&post.Content,
		&post.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post.CreatedAt = post.CreatedAt.UTC()

	return &post, nil
}

// FeedPosts возвращает страницу ленты пользователя: записи авторов,
// на которых он подписан, от новых к старым.
func (s *Storage) FeedPosts(ctx context.Context, userID int64, limit, offset int) ([]models.Post, error) {
	const op = "storage.postgres.FeedPosts"

	query := `
		SELECT p.id, p.user_id, u.username, p.content, p.created_at
		FROM posts p
		INNER JOIN follows f ON p.user_id = f.followee_id
		INNER JOIN users u ON p.user_id = u.id
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if scanErr := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Username,
			&post.Content,
			&post.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		post.CreatedAt = post.CreatedAt.UTC()
		posts = append(posts, post)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return posts, nil
}
