package ws

import (
	"encoding/json"
	"time"

	"facility-registry/internal/domain/facility"
)

const (
	EventSuggestionSubmitted = "suggestion_submitted"
	EventSuggestionProcessed = "suggestion_processed"
)

type ModerationEvent struct {
	Type         string `json:"type"`
	SuggestionID int64  `json:"suggestion_id"`
	MasterID     string `json:"master_id"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
}

// Notifier publishes moderation events on a Hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) SuggestionSubmitted(id int64, masterID string) {
	n.publish(ModerationEvent{
		Type:         EventSuggestionSubmitted,
		SuggestionID: id,
		MasterID:     masterID,
		Status:       string(facility.StatusPending),
	})
}

func (n *Notifier) SuggestionProcessed(id int64, masterID string, status facility.SuggestionStatus) {
	n.publish(ModerationEvent{
		Type:         EventSuggestionProcessed,
		SuggestionID: id,
		MasterID:     masterID,
		Status:       string(status),
	})
}

func (n *Notifier) publish(evt ModerationEvent) {
	if n == nil || n.hub == nil {
		return
	}
	evt.Timestamp = n.now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
