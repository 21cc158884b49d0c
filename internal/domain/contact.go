package domain

import (
	"errors"
	"time"
)

// ContactStatus enumerates lifecycle states for contact messages.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// ErrInvalidContactTransition is returned when a status change would move a contact backwards.
var ErrInvalidContactTransition = errors.New("invalid contact status transition")

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Status    ContactStatus
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewContact builds a contact in its initial state.
func NewContact(name, email, message string) *Contact {
	return &Contact{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  ContactStatusNew,
	}
}

var contactTransitions = map[ContactStatus][]ContactStatus{
	ContactStatusNew:     {ContactStatusRead, ContactStatusReplied},
	ContactStatusRead:    {ContactStatusReplied},
	ContactStatusReplied: {},
}

// Valid reports whether s is a known status.
func (s ContactStatus) Valid() bool {
	_, ok := contactTransitions[s]
	return ok
}

// CanTransition reports whether a contact may move from current to next.
func (s ContactStatus) CanTransition(next ContactStatus) bool {
	for _, candidate := range contactTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// MarkRead moves a new contact to read. It returns false when nothing changed.
func (c *Contact) MarkRead() bool {
	if c.Status != ContactStatusNew {
		return false
	}
	c.Status = ContactStatusRead
	return true
}

// MarkReplied forces the contact into the terminal replied state. It returns false when already replied.
func (c *Contact) MarkReplied() bool {
	if c.Status == ContactStatusReplied {
		return false
	}
	c.Status = ContactStatusReplied
	return true
}

// ContactStats holds per-status counts for the admin dashboard.
type ContactStats struct {
	New     int
	Read    int
	Replied int
}

// Total returns the number of contacts across all statuses.
func (s ContactStats) Total() int {
	return s.New + s.Read + s.Replied
}
