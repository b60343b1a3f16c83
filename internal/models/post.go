package models

import "time"

// Post - короткая текстовая запись пользователя.
// Username денормализован из users для отдачи ленты без дополнительного запроса.
type Post struct {
	ID        int64
	UserID    int64
	Username  string
	Content   string
	CreatedAt time.Time
}
