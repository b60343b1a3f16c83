package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/pkg/log"
	"github.com/nanmax/newsfeed/internal/storage"
)

const (
	// maxPostLen — максимальная длина записи в символах (runes).
	maxPostLen = 200

	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// CreatePost публикует запись от имени пользователя.
func (s *Service) CreatePost(ctx context.Context, userID int64, content string) (*models.Post, error) {
	const op = "service.posts.CreatePost"

	if content == "" || utf8.RuneCountInString(content) > maxPostLen {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidContent)
	}

	post, err := s.storage.SavePost(ctx, userID, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("post_created",
		slog.String("op", op),
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", userID),
	)

	return post, nil
}

// Feed возвращает страницу ленты пользователя: записи авторов, на которых
// он подписан, от новых к старым. page нумеруется с единицы.
func (s *Service) Feed(ctx context.Context, userID int64, page, limit int) ([]models.Post, error) {
	const op = "service.posts.Feed"

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultFeedLimit
	}

	if page < 1 || limit < 1 || limit > maxFeedLimit {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPage)
	}

	offset := (page - 1) * limit

	posts, err := s.storage.FeedPosts(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}
