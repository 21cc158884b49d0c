package domain

import (
	"errors"
	"time"
)

// ReplyStatus differentiates drafts from dispatched replies.
type ReplyStatus string

const (
	ReplyStatusDraft ReplyStatus = "draft"
	ReplyStatusSent  ReplyStatus = "sent"
)

// ErrReplyAlreadySent is returned for any mutation of a reply that has been dispatched.
var ErrReplyAlreadySent = errors.New("reply already sent")

// Reply is an outbound message addressed to a contact's sender.
type Reply struct {
	ID        string
	ContactID string
	Subject   string
	Message   string
	Status    ReplyStatus
	SentAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraft builds an unsent reply for a contact.
func NewDraft(contactID, subject, message string) *Reply {
	return &Reply{
		ContactID: contactID,
		Subject:   subject,
		Message:   message,
		Status:    ReplyStatusDraft,
	}
}

// IsDraft reports whether the reply can still be edited.
func (r *Reply) IsDraft() bool {
	return r.Status == ReplyStatusDraft
}

// Edit replaces the content of a draft. Status is left untouched.
func (r *Reply) Edit(subject, message string) error {
	if !r.IsDraft() {
		return ErrReplyAlreadySent
	}
	r.Subject = subject
	r.Message = message
	return nil
}

// MarkSent stamps the reply as dispatched at the given time.
func (r *Reply) MarkSent(at time.Time) error {
	if !r.IsDraft() {
		return ErrReplyAlreadySent
	}
	r.Status = ReplyStatusSent
	r.SentAt = &at
	return nil
}
