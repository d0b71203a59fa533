package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vidtube/api/internal/core/domain"
	"github.com/vidtube/api/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	cookieDomain   string
	cookieSameSite http.SameSite
	accessTTL      time.Duration
	refreshTTL     time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieDomain string, cookieSameSite http.SameSite,
	accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		cookieDomain:   cookieDomain,
		cookieSameSite: cookieSameSite,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

type registerRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, user)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, user, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	writeData(w, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges the refresh token (cookie for browsers, body field for
// other clients) for a freshly rotated pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		token = cookie.Value
	}
	if token == "" && r.Body != nil {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		h.expireCookies(w)
		writeServiceError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	writeData(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.expireCookies(w)
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	h.setCookie(w, "access_token", pair.AccessToken, int(h.accessTTL.Seconds()))
	h.setCookie(w, "refresh_token", pair.RefreshToken, int(h.refreshTTL.Seconds()))
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite,
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	h.setCookie(w, "access_token", "", -1)
	h.setCookie(w, "refresh_token", "", -1)
}
