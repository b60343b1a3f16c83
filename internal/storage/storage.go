// storage задаёт контракт работы с реляционным хранилищем сервиса.
//
// Реализации обязаны транслировать ошибки СУБД в sentinel-ошибки пакета:
// бизнес-логика сравнивает их через errors.Is и не знает о драйвере.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nanmax/newsfeed/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен/подписка).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/refresh-token/подписка).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя и возвращает присвоенный БД идентификатор.
	SaveUser(ctx context.Context, user *models.User) (int64, error)
	// UserByUsername находит пользователя по username.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// ListUsers возвращает всех пользователей, кроме exceptID,
	// с признаком подписки exceptID на каждого из них.
	ListUsers(ctx context.Context, exceptID int64) ([]models.UserSummary, error)
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// ConsumeRefreshToken атомарно помечает активный (не отозванный и не
	// просроченный на момент now) токен отозванным и возвращает ID владельца.
	// Если активного токена с таким хэшем нет — ErrNotFound; из двух
	// конкурентных вызовов успешным будет ровно один.
	ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) (int64, error)
	// RevokeAllUserTokens отзывает все неотозванные токены пользователя,
	// возвращает число отозванных.
	RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error)
	// DeleteStaleTokens удаляет просроченные и отозванные токены,
	// возвращает число удалённых строк.
	DeleteStaleTokens(ctx context.Context, now time.Time) (int64, error)
}

// PostStorage выполняет операции над записями пользователей.
type PostStorage interface {
	// SavePost создаёт запись и возвращает её вместе с username автора.
	SavePost(ctx context.Context, userID int64, content string) (*models.Post, error)
	// FeedPosts возвращает страницу ленты пользователя: записи тех, на кого
	// он подписан, от новых к старым.
	FeedPosts(ctx context.Context, userID int64, limit, offset int) ([]models.Post, error)
}

// FollowStorage выполняет операции над подписками.
type FollowStorage interface {
	// SaveFollow создаёт подписку follower -> followee.
	// Повторная подписка — ErrAlreadyExists; отсутствующий followee — ErrNotFound.
	SaveFollow(ctx context.Context, followerID, followeeID int64) error
	// DeleteFollow удаляет подписку; если её не было — ErrNotFound.
	DeleteFollow(ctx context.Context, followerID, followeeID int64) error
	// ListFollowing возвращает подписки пользователя, свежие первыми.
	ListFollowing(ctx context.Context, userID int64) ([]models.FollowedUser, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	RefreshTokenStorage
	PostStorage
	FollowStorage
	Close()
}
