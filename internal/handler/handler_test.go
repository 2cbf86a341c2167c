package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/middleware"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/view"
)

// routeRegistrar is what every handler exposes for router wiring.
type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// serve mounts the handler behind a stub session gate and performs one
// request against it.
func serve(t *testing.T, h routeRegistrar, st *session.State, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithState(req.Context(), st)))
		})
	})
	h.RegisterRoutes(r)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func newViews(t *testing.T) *view.Engine {
	t.Helper()
	views, err := view.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return views
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
