package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/landahan-pos/console/internal/session"
)

type contextKey string

const stateKey contextKey = "console-session"

// RequireSession resolves the console session cookie and attaches the
// session state to the request context. Requests without a valid session,
// or whose upstream login has expired, get a 401 with the login redirect
// target so the page can bounce the user.
func RequireSession(manager *session.Manager, cookieName, loginRedirect string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				unauthorized(w, "not signed in", loginRedirect)
				return
			}

			state, err := manager.Lookup(cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					unauthorized(w, "session not found", loginRedirect)
					return
				}
				unauthorized(w, "invalid session token", loginRedirect)
				return
			}

			if state.Expired() {
				unauthorized(w, "Session expired. Redirecting to login...", loginRedirect)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), state)))
		})
	}
}

// WithState attaches a session state to the context.
func WithState(ctx context.Context, state *session.State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

// StateFromContext returns the session state attached by RequireSession,
// or nil outside the middleware.
func StateFromContext(ctx context.Context) *session.State {
	state, _ := ctx.Value(stateKey).(*session.State)
	return state
}

func unauthorized(w http.ResponseWriter, msg, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "redirect": redirect})
}
