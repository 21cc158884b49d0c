package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/mail"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Dispatcher
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Dispatcher, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
	n.dispatcher.Subscribe(events.EventContactRead, n.logEvent)
	n.dispatcher.Subscribe(events.EventContactReplied, n.logEvent)
	n.dispatcher.Subscribe(events.EventContactDeleted, n.logEvent)
	n.dispatcher.Subscribe(events.EventReplyDraftSaved, n.logEvent)
	n.dispatcher.Subscribe(events.EventReplySent, n.logEvent)
}

// handleContactSubmitted mails the operator about a new contact. The contact
// is already stored, so a failure here is only reported to the dispatcher.
func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if strings.TrimSpace(n.cfg.OperatorTo) == "" {
		n.logger.Debug("operator address not configured; skipping notification",
			zap.String("contact_id", event.ContactID))
		return nil
	}

	body, err := mail.RenderOperatorNotification(mail.OperatorData{
		SiteName:    n.cfg.SiteName,
		Name:        payload.Name,
		Email:       payload.Email,
		Message:     payload.Message,
		SubmittedAt: payload.CreatedAt,
	})
	if err != nil {
		return err
	}

	err = n.mailer.Send(ctx, mail.Message{
		To:      n.cfg.OperatorTo,
		ReplyTo: payload.Email,
		Subject: fmt.Sprintf("[%s] New contact from %s", n.cfg.SiteName, payload.Name),
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("notify operator about contact %s: %w", event.ContactID, err)
	}
	return nil
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("contact_id", event.ContactID),
		zap.Any("payload", event.Payload))
	return nil
}
