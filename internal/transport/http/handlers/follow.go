package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	followeeID, err := strconv.ParseInt(chi.URLParam(r, "userid"), 10, 64)
	if err != nil {
		httperr.Write(w, r, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	if err := h.Service.Follow(r.Context(), principal.ID, followeeID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("you are now following user %d", followeeID),
	})
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	followeeID, err := strconv.ParseInt(chi.URLParam(r, "userid"), 10, 64)
	if err != nil {
		httperr.Write(w, r, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	if err := h.Service.Unfollow(r.Context(), principal.ID, followeeID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("you unfollowed user %d", followeeID),
	})
}
