package mail

import (
	"context"
	"errors"
	"strings"
)

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("mail: message has no recipient")

// Message is a plain-text outbound mail.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Dispatcher delivers messages. A nil error means the mail was handed off.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	return nil
}

// sanitizeHeader drops CR/LF so user-supplied text cannot inject headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
