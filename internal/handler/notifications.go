package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/view"
)

// NotificationsHandler serves the toast container for pages that poll
// instead of holding the websocket open.
type NotificationsHandler struct {
	views *view.Engine
}

func NewNotificationsHandler(views *view.Engine) *NotificationsHandler {
	return &NotificationsHandler{views: views}
}

func (h *NotificationsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.Toasts)
}

func (h *NotificationsHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	list := view.ToastList{Notifications: st.Notifier.Active()}
	if err := h.views.Render(w, "toasts", list); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}
