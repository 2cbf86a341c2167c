package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/auth"
	"github.com/landahan-pos/console/internal/config"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/upstream"
)

// AuthHandler owns the login page endpoints. Login and the OTP reset
// flow run before the user is signed in, so they establish the console
// session themselves; status and logout run behind the session gate.
type AuthHandler struct {
	manager *session.Manager
	cfg     *config.Config
}

func NewAuthHandler(manager *session.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{manager: manager, cfg: cfg}
}

// RegisterRoutes registers the public endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/request-reset", h.RequestReset)
	r.Post("/auth/verify-otp", h.VerifyOTP)
	r.Post("/auth/reset-password", h.ResetPassword)
}

// RegisterSessionRoutes registers the endpoints that need a live session.
func (h *AuthHandler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/auth/status", h.Status)
	r.Post("/auth/logout", h.Logout)
}

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyRequest struct {
	OTP string `json:"otp" validate:"required"`
}

type passwordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ensureSession resolves the console session cookie, creating a fresh
// session when the browser has none yet. The login page needs state
// before any upstream login succeeds: the OTP flow walks three requests.
func (h *AuthHandler) ensureSession(w http.ResponseWriter, r *http.Request) (*session.State, error) {
	if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
		if st, err := h.manager.Lookup(cookie.Value); err == nil && !st.Expired() {
			return st, nil
		}
	}

	st, token, err := h.manager.Create()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(session.TokenTTL.Seconds()),
	})
	return st, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	st, err := h.ensureSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not start session"})
		return
	}

	msg, err := st.Auth.Login(r.Context(), creds)
	if err != nil {
		// The backend answers a bad login with 401, which the client
		// collapses into its expiry sentinel. Here it just means the
		// credentials were wrong.
		if errors.Is(err, upstream.ErrSessionExpired) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password."})
			return
		}
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	st, err := h.ensureSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not start session"})
		return
	}

	msg, err := st.Auth.Register(r.Context(), creds)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Success: true, Message: msg})
}

func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.ensureSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not start session"})
		return
	}

	msg, err := st.Reset.RequestOTP(r.Context(), req.Email)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.ensureSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not start session"})
		return
	}

	msg, err := st.Reset.VerifyOTP(r.Context(), req.OTP)
	if err != nil {
		if errors.Is(err, auth.ErrResetOrder) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := h.ensureSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not start session"})
		return
	}

	msg, err := st.Reset.ResetPassword(r.Context(), req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrResetOrder) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	status, err := st.Auth.AuthStatus(r.Context())
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	// Best effort upstream; the console session dies regardless.
	_ = st.Auth.Logout(r.Context())
	h.manager.Destroy(st.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out."})
}
