package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nanmax/newsfeed/internal/models"
)

// Service — контракт бизнес-логики, нужный HTTP-слою.
// Реализуется пакетом service.
type Service interface {
	RegisterUser(ctx context.Context, username, password string) (*models.User, error)
	LoginUser(ctx context.Context, username, password string) (*models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	AccessTokenTTL() time.Duration

	CreatePost(ctx context.Context, userID int64, content string) (*models.Post, error)
	Feed(ctx context.Context, userID int64, page, limit int) ([]models.Post, error)

	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	ListUsers(ctx context.Context, currentID int64) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.FollowedUser, error)
}

// Handlers агрегирует зависимости REST-хендлеров.
type Handlers struct {
	Service Service
}

func New(s Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
