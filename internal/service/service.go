// service содержит бизнес-логику сервиса ленты новостей:
// регистрацию/аутентификацию пользователей, выпуск/ротацию токенов,
// публикацию записей, подписки и выдачу ленты — всё через интерфейсы
// из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются sentinel-переменными и далее маппятся
//     HTTP-слоем на статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/nanmax/newsfeed/internal/cache"
	"github.com/nanmax/newsfeed/internal/config"
	"github.com/nanmax/newsfeed/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Сообщение едино для обоих случаев, чтобы не раскрывать существование аккаунта.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи,
	// отозван или отсутствует в хранилище. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrUsernameTaken — username уже занят другим пользователем.
	// Транспорт: HTTP 409.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// refresh-токен (редкий случай коллизий хэша в БД). Транспорт: HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrInvalidUsername — username не проходит политику валидации
	// (длина 3–50, символы [A-Za-z0-9_]). Транспорт: HTTP 400.
	ErrInvalidUsername = errors.New("invalid username format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidContent — текст записи пустой или длиннее 200 символов.
	// Транспорт: HTTP 422.
	ErrInvalidContent = errors.New("invalid post content")

	// ErrSelfFollow — попытка подписаться на самого себя. Транспорт: HTTP 400.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrUserNotFound — целевой пользователь не существует. Транспорт: HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyFollowing — подписка уже есть. Транспорт: HTTP 409.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing — подписки не было. Транспорт: HTTP 404.
	ErrNotFollowing = errors.New("not following this user")

	// ErrInvalidPage — некорректные параметры пагинации ленты. Транспорт: HTTP 400.
	ErrInvalidPage = errors.New("invalid pagination params")
)

// Service описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
