package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/pkg/log"
	"github.com/nanmax/newsfeed/internal/storage"
)

// Follow подписывает followerID на followeeID.
// Подписка на самого себя запрещена; повторная подписка — конфликт.
func (s *Service) Follow(ctx context.Context, followerID, followeeID int64) error {
	const op = "service.social.Follow"

	if followerID == followeeID {
		return fmt.Errorf("%s: %w", op, ErrSelfFollow)
	}

	if err := s.storage.SaveFollow(ctx, followerID, followeeID); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return fmt.Errorf("%s: %w", op, ErrAlreadyFollowing)
		case errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("follow_created",
		slog.String("op", op),
		slog.Int64("follower_id", followerID),
		slog.Int64("followee_id", followeeID),
	)

	return nil
}

// Unfollow снимает подписку followerID с followeeID.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	const op = "service.social.Unfollow"

	if err := s.storage.DeleteFollow(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFollowing)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("follow_deleted",
		slog.String("op", op),
		slog.Int64("follower_id", followerID),
		slog.Int64("followee_id", followeeID),
	)

	return nil
}

// ListUsers возвращает всех пользователей, кроме текущего,
// с признаком подписки текущего на каждого.
func (s *Service) ListUsers(ctx context.Context, currentID int64) ([]models.UserSummary, error) {
	const op = "service.social.ListUsers"

	users, err := s.storage.ListUsers(ctx, currentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// ListFollowing возвращает подписки пользователя, свежие первыми.
func (s *Service) ListFollowing(ctx context.Context, userID int64) ([]models.FollowedUser, error) {
	const op = "service.social.ListFollowing"

	following, err := s.storage.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return following, nil
}
