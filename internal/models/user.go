package models

import "time"

// User - модель пользователя в системе.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSummary — пользователь в общем списке с признаком подписки
// текущего пользователя на него.
type UserSummary struct {
	ID          int64
	Username    string
	IsFollowing bool
	CreatedAt   time.Time
}

// FollowedUser — пользователь из списка подписок с моментом подписки.
type FollowedUser struct {
	ID         int64
	Username   string
	FollowedAt time.Time
}
