package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nanmax/newsfeed/internal/cache"
	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/pkg/log"
	"github.com/nanmax/newsfeed/internal/storage"
)

type accessClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshToken обновляет пару токенов по refresh-токену (ротация).
// Токен одноразовый: он атомарно гасится в хранилище, и из двух
// конкурентных вызовов с одним токеном успешен ровно один.
// Новый refresh-токен возвращается клиенту вместе с access-токеном.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.token.RefreshToken"

	lg := log.From(ctx)

	hash := hashRefreshToken(refreshToken)
	now := time.Now().UTC()

	// Быстрый отказ по кэшу: заведомо отозванный/просроченный токен
	// не ходит в БД. Источник истины — всё равно ConsumeRefreshToken.
	if s.rcache != nil {
		entry, ok, err := s.rcache.Get(ctx, hash)
		if err != nil {
			lg.Warn("refresh_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if ok && (entry.Revoked || now.After(entry.ExpiresAt)) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
	}

	userID, err := s.storage.ConsumeRefreshToken(ctx, hash, now)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_consume_rejected",
				slog.String("op", op),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.rcache != nil {
		if cerr := s.rcache.MarkRevoked(ctx, hash); cerr != nil {
			lg.Warn("refresh_cache_revoke_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.issueTokenPair(ctx, user)
}

// ValidateToken проверяет access-токен и возвращает данные пользователя.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (int64, string, error) {
	const op = "service.token.ValidateToken"

	uid, username, err := s.validateAccessToken(accessToken)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	return uid, username, nil
}

// AccessTokenTTL возвращает настроенное время жизни access-токена.
func (s *Service) AccessTokenTTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

// issueTokenPair выпускает новую пару access+refresh токенов.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.token.issueTokenPair"

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(ctx, user.ID, user.Username, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plain, err := s.generateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    plain,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// generateAccessToken генерирует access-токен.
func (s *Service) generateAccessToken(ctx context.Context, userID int64, username string, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	claims := accessClaims{
		UserID:   strconv.FormatInt(userID, 10),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken валидирует access-токен.
func (s *Service) validateAccessToken(tokenStr string) (int64, string, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return 0, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.Username, nil
}

// generateRefreshToken создает новый refresh-токен (32 случайных байта,
// base64url) и сохраняет его хэш.
func (s *Service) generateRefreshToken(ctx context.Context, userID int64) (string, error) {
	const (
		op          = "service.token.generateRefreshToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}
		plain := base64.RawURLEncoding.EncodeToString(b)
		hash := hashRefreshToken(plain)

		now := time.Now().UTC()
		token := &models.RefreshToken{
			TokenHash: hash,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
			Revoked:   false,
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_refresh_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}

		if s.rcache != nil {
			entry := &cache.RefreshEntry{
				UserID:    userID,
				Revoked:   false,
				ExpiresAt: token.ExpiresAt,
			}
			if cerr := s.rcache.Set(ctx, hash, entry, s.cfg.RefreshTokenTTL); cerr != nil {
				lg.Warn("refresh_cache_set_failed",
					slog.String("op", op),
					slog.String("err", cerr.Error()),
				)
			}
		}

		return plain, nil
	}

	lg.Error("refresh_collision_exceeded",
		slog.String("op", op),
	)

	return "", fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// hashRefreshToken считает детерминированный хэш секрета для хранения и поиска.
func hashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
