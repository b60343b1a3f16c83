package handlers

import (
	"net/http"
	"strconv"

	"github.com/nanmax/newsfeed/internal/service"
	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

type feedResponse struct {
	Page  int            `json:"page"`
	Posts []postResponse `json:"posts"`
}

// Feed отдаёт страницу ленты: посты пользователей, на которых подписан
// текущий пользователь, от новых к старым.
//
// Параметры page и limit опциональны; нечисловые значения — 400.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	page, err := queryInt(r, "page", 0)
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidPage)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidPage)
		return
	}

	posts, err := h.Service.Feed(r.Context(), principal.ID, page, limit)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if page <= 0 {
		page = 1
	}

	out := feedResponse{Page: page, Posts: make([]postResponse, 0, len(posts))}
	for _, p := range posts {
		out.Posts = append(out.Posts, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, out)
}

// queryInt читает числовой query-параметр; пустое значение — fallback.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}
