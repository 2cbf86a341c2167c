package session

import (
	"errors"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/landahan-pos/console/internal/auth"
	"github.com/landahan-pos/console/internal/config"
	"github.com/landahan-pos/console/internal/forecast"
	"github.com/landahan-pos/console/internal/inventory"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/pos"
	"github.com/landahan-pos/console/internal/profit"
	"github.com/landahan-pos/console/internal/sellers"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/landahan-pos/console/internal/ws"
)

const (
	// TokenTTL bounds the console cookie; IdleTTL reaps abandoned
	// sessions well before that.
	TokenTTL = 24 * time.Hour
	IdleTTL  = 2 * time.Hour
)

var ErrNotFound = errors.New("session not found")

// State is everything one console session owns: the upstream clients
// sharing a cookie jar, the page controllers, and the notifier. It is
// the server-side stand-in for what the browser pages used to hold in
// module globals.
type State struct {
	ID        uuid.UUID
	API       *upstream.Client
	Arima     *upstream.Client
	Auth      *auth.Service
	Reset     *auth.ResetFlow
	Inventory *inventory.Controller
	Sellers   *sellers.Directory
	Profit    *profit.Reporter
	Forecast  *forecast.Viewer
	POS       *pos.Terminal
	Notifier  *notify.Center

	expired  atomic.Bool
	lastSeen atomic.Int64
}

// Expired reports whether the backend has rejected this session. Once
// set it never clears; the user starts a fresh console session at login.
func (s *State) Expired() bool {
	return s.expired.Load()
}

func (s *State) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Manager is the in-memory session registry keyed by the ID inside the
// signed console cookie.
type Manager struct {
	cfg *config.Config
	hub *ws.Hub

	mu       sync.Mutex
	sessions map[uuid.UUID]*State
	now      func() time.Time
}

func NewManager(cfg *config.Config, hub *ws.Hub) *Manager {
	return &Manager{
		cfg:      cfg,
		hub:      hub,
		sessions: make(map[uuid.UUID]*State),
		now:      time.Now,
	}
}

// Create builds a fresh session with its own cookie jar and returns it
// with the signed token for the console cookie.
func (m *Manager) Create() (*State, string, error) {
	id := uuid.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, "", err
	}

	notifier := notify.NewCenter(ws.NewNotificationSink(m.hub, id.String()))
	st := &State{ID: id, Notifier: notifier}

	// The backend signals expiry on any 401/403; the toast and the
	// expired flag must fire exactly once no matter how many calls are
	// in flight.
	var once sync.Once
	onExpired := func() {
		once.Do(func() {
			st.expired.Store(true)
			notifier.Warning("Session expired. Redirecting to login...")
		})
	}

	st.API = upstream.New(m.cfg.UpstreamAPIURL, jar, onExpired)
	st.Arima = upstream.New(m.cfg.ForecastAPIURL, jar, onExpired)
	st.Auth = auth.NewService(st.API)
	st.Reset = auth.NewResetFlow(st.API)
	st.Inventory = inventory.NewController(inventory.NewAPI(st.API), notifier)
	st.Sellers = sellers.NewDirectory(sellers.NewAPI(st.API), notifier)
	st.Profit = profit.NewReporter(profit.NewAPI(st.API), notifier, m.now())
	st.Forecast = forecast.NewViewer(forecast.NewAPI(st.Arima))
	st.POS = pos.NewTerminal(pos.NewAPI(st.API), notifier)
	st.touch(m.now())

	token, err := auth.GenerateToken(m.cfg.SessionSecret, id, TokenTTL)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[id] = st
	m.mu.Unlock()
	return st, token, nil
}

// Lookup resolves a console cookie token to its session and refreshes
// its idle clock.
func (m *Manager) Lookup(token string) (*State, error) {
	claims, err := auth.ValidateToken(m.cfg.SessionSecret, token)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	st, ok := m.sessions[claims.SessionID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	st.touch(m.now())
	return st, nil
}

// Destroy drops a session, typically at logout.
func (m *Manager) Destroy(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Reap removes sessions idle past the cutoff and returns how many were
// dropped.
func (m *Manager) Reap() int {
	cutoff := m.now().Add(-IdleTTL).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()
	reaped := 0
	for id, st := range m.sessions {
		if st.lastSeen.Load() < cutoff {
			delete(m.sessions, id)
			reaped++
		}
	}
	return reaped
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
