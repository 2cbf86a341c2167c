package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/landahan-pos/console/internal/config"
	"github.com/landahan-pos/console/internal/middleware"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/ws"
)

func testManager(t *testing.T) *session.Manager {
	t.Helper()
	cfg := &config.Config{
		UpstreamAPIURL: "https://backend.test/api",
		ForecastAPIURL: "https://backend.test/arima",
		SessionSecret:  "test-secret",
		SessionCookie:  "console_session",
		LoginRedirect:  "/login.html",
	}
	return session.NewManager(cfg, ws.NewHub())
}

func TestRequireSession_ValidCookie(t *testing.T) {
	manager := testManager(t)
	state, token, err := manager.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	handler := middleware.RequireSession(manager, "console_session", "/login.html")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := middleware.StateFromContext(r.Context())
		if got == nil {
			t.Fatal("expected session state in context")
		}
		if got.ID != state.ID {
			t.Errorf("session ID: got %v, want %v", got.ID, state.ID)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/inventory", nil)
	req.AddCookie(&http.Cookie{Name: "console_session", Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireSession_MissingCookie(t *testing.T) {
	manager := testManager(t)

	handler := middleware.RequireSession(manager, "console_session", "/login.html")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/inventory", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["redirect"] != "/login.html" {
		t.Errorf("redirect: got %q, want /login.html", body["redirect"])
	}
}

func TestRequireSession_DestroyedSession(t *testing.T) {
	manager := testManager(t)
	state, token, err := manager.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	manager.Destroy(state.ID)

	handler := middleware.RequireSession(manager, "console_session", "/login.html")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/inventory", nil)
	req.AddCookie(&http.Cookie{Name: "console_session", Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireSession_ForgedToken(t *testing.T) {
	manager := testManager(t)

	handler := middleware.RequireSession(manager, "console_session", "/login.html")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/inventory", nil)
	req.AddCookie(&http.Cookie{Name: "console_session", Value: "not-a-jwt"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
