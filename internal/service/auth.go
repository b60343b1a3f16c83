package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/pkg/log"
	"github.com/nanmax/newsfeed/internal/pkg/redact"
	"github.com/nanmax/newsfeed/internal/storage"
)

// RegisterUser регистрирует нового пользователя.
// Возвращает созданную учётную запись без хэша пароля.
func (s *Service) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	if err := validateUsername(username); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Предварительная проверка занятости username; гонку двух одновременных
	// регистраций закрывает уникальный индекс в БД ниже.
	_, err := s.storage.UserByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.storage.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.ID = id
	user.PasswordHash = ""

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.Int64("user_id", id),
		slog.String("username", redact.Username(username)),
	)

	return user, nil
}

// LoginUser выполняет вход по username+пароль.
// Успешный вход отзывает все прежние refresh-токены аккаунта: валидной
// остаётся только цепочка последней сессии.
func (s *Service) LoginUser(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "service.auth.LoginUser"

	if username == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	revoked, err := s.storage.RevokeAllUserTokens(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if revoked > 0 {
		log.From(ctx).Info("prior_sessions_revoked",
			slog.String("op", op),
			slog.Int64("user_id", user.ID),
			slog.Int64("count", revoked),
		)
	}

	return s.issueTokenPair(ctx, user)
}

// Logout отзывает все неотозванные refresh-токены пользователя.
// Уже выпущенные access-токены остаются валидными до естественного
// истечения: они stateless и не подлежат отзыву.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	const op = "service.auth.Logout"

	revoked, err := s.storage.RevokeAllUserTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_logged_out",
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.Int64("revoked", revoked),
	)

	return nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateUsername проверяет политику username: длина 3–50, [A-Za-z0-9_].
func validateUsername(username string) error {
	const op = "service.auth.validateUsername"

	if len(username) < 3 || len(username) > 50 {
		return fmt.Errorf("%s: %w", op, ErrInvalidUsername)
	}

	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return fmt.Errorf("%s: %w", op, ErrInvalidUsername)
		}
	}

	return nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина 8–72 байта (верхняя граница — ограничение bcrypt).
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len(pw) < 8 || len(pw) > 72 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
