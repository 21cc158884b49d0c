package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactSubmitted EventType = "contact_submitted"
	EventContactRead      EventType = "contact_read"
	EventContactReplied   EventType = "contact_replied"
	EventContactDeleted   EventType = "contact_deleted"
	EventReplyDraftSaved  EventType = "reply_draft_saved"
	EventReplySent        EventType = "reply_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ContactID string      `json:"contact_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, contactID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ContactID: contactID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactStatusChangedPayload payload.
type ContactStatusChangedPayload struct {
	OldStatus domain.ContactStatus `json:"old_status"`
	NewStatus domain.ContactStatus `json:"new_status"`
}

// ReplyPayload payload.
type ReplyPayload struct {
	ReplyID string             `json:"reply_id"`
	Status  domain.ReplyStatus `json:"status"`
	Subject string             `json:"subject"`
}
