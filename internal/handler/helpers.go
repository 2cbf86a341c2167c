package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landahan-pos/console/internal/middleware"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/upstream"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes and validates a request body in one step. Validation
// failures surface as a 400 with the offending field named.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid field: " + fields[0].Field()})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// sessionState pulls the console session attached by the middleware.
func sessionState(w http.ResponseWriter, r *http.Request) *session.State {
	st := middleware.StateFromContext(r.Context())
	if st == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
	}
	return st
}

// upstreamError translates a backend failure into the console's response.
// The message the user saw in a toast is already recorded; the handler
// only needs to relay a status and the upstream message.
func upstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, upstream.ErrSessionExpired) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Session expired. Redirecting to login..."})
		return
	}
	var ue *upstream.Error
	if errors.As(err, &ue) {
		status := ue.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": ue.Message})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}
