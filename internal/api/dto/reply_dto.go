package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ReplyRequest creates a reply. Send=true mails it immediately, otherwise a draft is saved.
type ReplyRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Send    bool   `json:"send"`
}

// UpdateReplyRequest edits a draft.
type UpdateReplyRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendDraftRequest optionally carries final edits. Set both fields or neither.
type SendDraftRequest struct {
	Subject *string `json:"subject"`
	Message *string `json:"message"`
}

// ReplyResponse represents a reply.
type ReplyResponse struct {
	ID        string             `json:"id"`
	ContactID string             `json:"contact_id"`
	Subject   string             `json:"subject"`
	Message   string             `json:"message"`
	Status    domain.ReplyStatus `json:"status"`
	SentAt    *time.Time         `json:"sent_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewReplyResponse maps a domain reply.
func NewReplyResponse(r *domain.Reply) ReplyResponse {
	return ReplyResponse{
		ID:        r.ID,
		ContactID: r.ContactID,
		Subject:   r.Subject,
		Message:   r.Message,
		Status:    r.Status,
		SentAt:    r.SentAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReplyResponses maps a list.
func NewReplyResponses(replies []domain.Reply) []ReplyResponse {
	out := make([]ReplyResponse, 0, len(replies))
	for i := range replies {
		out = append(out, NewReplyResponse(&replies[i]))
	}
	return out
}
