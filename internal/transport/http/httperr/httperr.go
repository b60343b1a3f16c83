// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку бизнес-логики (sentinel из пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый код;
//   - краткое безопасное сообщение без утечки деталей.
//
// Маппинг решается только здесь, одной таблицей: хендлеры не подбирают
// статусы и не дописывают сообщения в ошибки по месту.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nanmax/newsfeed/internal/service"
)

// ErrMalformedBody — тело запроса не распарсилось или содержит лишние поля.
var ErrMalformedBody = errors.New("malformed request body")

// APIError — единый формат ошибки для фронта.
// Error — человекочитаемое сообщение (его показывает UI).
// Code — короткий стабильный код для машиночитаемой обработки.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку бизнес-логики в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - неизвестная ошибка — 500/internal (детали остаются в серверных логах).
func ToHTTP(err error) (int, APIError) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, APIError{Error: "Internal server error", Code: "internal"}

	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, APIError{Error: "Invalid request body", Code: "bad_request"}

	case errors.Is(err, service.ErrInvalidUsername):
		return http.StatusBadRequest, APIError{Error: "Username must be 3-50 characters: letters, digits, underscore", Code: "invalid_username"}
	case errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, APIError{Error: "Password is required", Code: "empty_password"}
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, APIError{Error: "Password must be 8-72 characters", Code: "weak_password"}
	case errors.Is(err, service.ErrInvalidPage):
		return http.StatusBadRequest, APIError{Error: "Invalid pagination parameters", Code: "invalid_pagination"}
	case errors.Is(err, service.ErrSelfFollow):
		return http.StatusBadRequest, APIError{Error: "Cannot follow yourself", Code: "self_follow"}

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, APIError{Error: "Invalid credentials", Code: "invalid_credentials"}
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, APIError{Error: "Invalid or expired refresh token", Code: "invalid_token"}

	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, APIError{Error: "User not found", Code: "user_not_found"}
	case errors.Is(err, service.ErrNotFollowing):
		return http.StatusNotFound, APIError{Error: "Not following this user", Code: "not_following"}

	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, APIError{Error: "Username already exists", Code: "username_taken"}
	case errors.Is(err, service.ErrAlreadyFollowing):
		return http.StatusConflict, APIError{Error: "Already following this user", Code: "already_following"}

	case errors.Is(err, service.ErrInvalidContent):
		return http.StatusUnprocessableEntity, APIError{Error: "Post content must be 1-200 characters", Code: "invalid_content"}

	default:
		return http.StatusInternalServerError, APIError{Error: "Internal server error", Code: "internal"}
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// Write пишет ошибку с явным статусом/кодом/сообщением.
// Используется там, где ошибка рождается в самом HTTP-слое
// (например, в auth-мидлваре).
func Write(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, APIError{Error: message, Code: code})
}

func write(w http.ResponseWriter, r *http.Request, status int, resp APIError) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
