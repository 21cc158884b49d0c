package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-service/internal/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDispatcher delivers mail through an SMTP relay.
type SMTPDispatcher struct {
	addr     string
	host     string
	from     string
	auth     smtp.Auth
	sendMail sendFunc
	now      func() time.Time
}

// NewSMTPDispatcher builds a dispatcher from mail settings.
func NewSMTPDispatcher(cfg config.MailConfig) *SMTPDispatcher {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPDispatcher{
		addr:     cfg.SMTPAddr(),
		host:     cfg.SMTPHost,
		from:     cfg.From,
		auth:     auth,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

// Send writes msg to the relay. The context is checked before dialing only;
// net/smtp has no cancellation once the session starts.
func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.sendMail(d.addr, d.auth, d.from, []string{msg.To}, d.encode(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", d.addr, err)
	}
	return nil
}

func (d *SMTPDispatcher) encode(msg Message) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", sanitizeHeader(d.from))
	fmt.Fprintf(&buf, "To: %s\r\n", sanitizeHeader(msg.To))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", sanitizeHeader(msg.ReplyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", d.now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), d.host)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)
	return buf.Bytes()
}
