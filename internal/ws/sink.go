package ws

import (
	"encoding/json"
	"log"

	"github.com/landahan-pos/console/internal/notify"
)

// EventNotificationShown is pushed whenever a toast is created.
const EventNotificationShown = "notification.shown"

// NotificationSink bridges a session's notify.Center to its hub room.
type NotificationSink struct {
	hub       *Hub
	sessionID string
}

// NewNotificationSink creates a sink publishing into the given session room.
func NewNotificationSink(hub *Hub, sessionID string) *NotificationSink {
	return &NotificationSink{hub: hub, sessionID: sessionID}
}

// Publish implements notify.Sink.
func (s *NotificationSink) Publish(n notify.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("ERROR: marshal notification: %v", err)
		return
	}
	s.hub.BroadcastToSession(s.sessionID, Event{
		Type:    EventNotificationShown,
		Payload: payload,
	})
}
