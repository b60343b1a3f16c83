package models

import "time"

// RefreshToken - данные refresh-токена для управления сессиями.
// В БД хранится только SHA-256 хэш токена; сам секрет клиенту
// отдаётся один раз при выпуске.
type RefreshToken struct {
	TokenHash string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}
