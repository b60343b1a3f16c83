package handlers

import (
	"net/http"

	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse — ответ login и refresh-token.
// ExpiresIn — время жизни access-токена в секундах.
type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrMalformedBody)
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), in.Username, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrMalformedBody)
		return
	}

	pair, err := h.Service.LoginUser(r.Context(), in.Username, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(h.Service.AccessTokenTTL().Seconds()),
	})
}

// RefreshToken выполняет ротацию: вместе с новым access-токеном клиенту
// возвращается и новый refresh-токен — старый уже отозван и бесполезен.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrMalformedBody)
		return
	}

	if in.RefreshToken == "" {
		httperr.WriteError(w, r, httperr.ErrMalformedBody)
		return
	}

	pair, err := h.Service.RefreshToken(r.Context(), in.RefreshToken)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(h.Service.AccessTokenTTL().Seconds()),
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
		return
	}

	if err := h.Service.Logout(r.Context(), principal.ID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
