package handlers

import (
	"net/http"
	"time"

	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

type userSummaryResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	IsFollowing bool      `json:"isFollowing"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type usersResponse struct {
	Users []userSummaryResponse `json:"users"`
}

type followedUserResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FollowedAt time.Time `json:"followedAt"`
}

type followingResponse struct {
	Following []followedUserResponse `json:"following"`
}

// ListUsers отдаёт всех пользователей, кроме текущего,
// с признаком «я уже подписан».
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	users, err := h.Service.ListUsers(r.Context(), principal.ID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := usersResponse{Users: make([]userSummaryResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, userSummaryResponse{
			ID:          u.ID,
			Username:    u.Username,
			IsFollowing: u.IsFollowing,
			JoinedAt:    u.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) ListFollowing(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	following, err := h.Service.ListFollowing(r.Context(), principal.ID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := followingResponse{Following: make([]followedUserResponse, 0, len(following))}
	for _, f := range following {
		out.Following = append(out.Following, followedUserResponse{
			ID:         f.ID,
			Username:   f.Username,
			FollowedAt: f.FollowedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
