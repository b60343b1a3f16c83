package handlers

import (
	"net/http"
	"time"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

type createPostRequest struct {
	Content string `json:"content"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPostResponse(p models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Username:  p.Username,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	var in createPostRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrMalformedBody)
		return
	}

	post, err := h.Service.CreatePost(r.Context(), principal.ID, in.Content)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(*post))
}
