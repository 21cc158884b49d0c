package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/mail"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

// ReplyService runs the draft and send workflow for replies.
type ReplyService struct {
	replies    repository.ReplyRepository
	contacts   repository.ContactRepository
	mailer     mail.Dispatcher
	dispatcher events.Dispatcher
	logger     *zap.Logger
	siteName   string
	replyTo    string
	now        func() time.Time
}

// ReplyDependencies bundles collaborators for the reply service.
type ReplyDependencies struct {
	ReplyRepo   repository.ReplyRepository
	ContactRepo repository.ContactRepository
	Mailer      mail.Dispatcher
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	SiteName    string
	// ReplyTo is set on outgoing replies so answers reach the operator.
	ReplyTo string
	Now     func() time.Time
}

// ReplyInput carries the editable part of a reply.
type ReplyInput struct {
	Subject string
	Message string
}

func (in ReplyInput) trimmed() ReplyInput {
	return ReplyInput{Subject: strings.TrimSpace(in.Subject), Message: strings.TrimSpace(in.Message)}
}

// NewReplyService constructs the service.
func NewReplyService(deps ReplyDependencies) *ReplyService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ReplyService{
		replies:    deps.ReplyRepo,
		contacts:   deps.ContactRepo,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		siteName:   deps.SiteName,
		replyTo:    deps.ReplyTo,
		now:        now,
	}
}

// SaveDraft stores an unsent reply. The contact status is left alone.
func (s *ReplyService) SaveDraft(ctx context.Context, contactID string, input ReplyInput) (*domain.Reply, error) {
	input = input.trimmed()
	if err := validateReplyInput(input); err != nil {
		return nil, err
	}
	if _, err := s.loadContact(ctx, contactID); err != nil {
		return nil, err
	}

	reply := domain.NewDraft(contactID, input.Subject, input.Message)
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, mapError(err, "contact", contactID)
	}
	publishEvent(ctx, s.dispatcher, events.New(events.EventReplyDraftSaved, contactID, replyPayload(reply)))
	return reply, nil
}

// UpdateDraft replaces the content of a draft.
func (s *ReplyService) UpdateDraft(ctx context.Context, replyID string, input ReplyInput) (*domain.Reply, error) {
	input = input.trimmed()
	if err := validateReplyInput(input); err != nil {
		return nil, err
	}
	reply, err := s.Get(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if err := reply.Edit(input.Subject, input.Message); err != nil {
		return nil, mapError(err, "reply", replyID)
	}
	if err := s.replies.Update(ctx, reply); err != nil {
		return nil, mapError(err, "reply", replyID)
	}
	return reply, nil
}

// SendReply mails a new reply and records it as sent.
func (s *ReplyService) SendReply(ctx context.Context, contactID string, input ReplyInput) (*domain.Reply, error) {
	input = input.trimmed()
	if err := validateReplyInput(input); err != nil {
		return nil, err
	}
	contact, err := s.loadContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, contact, domain.NewDraft(contactID, input.Subject, input.Message))
}

// SendDraft mails an existing draft, optionally applying final edits first.
func (s *ReplyService) SendDraft(ctx context.Context, replyID string, input *ReplyInput) (*domain.Reply, error) {
	reply, err := s.Get(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if !reply.IsDraft() {
		return nil, mapError(domain.ErrReplyAlreadySent, "reply", replyID)
	}
	if input != nil {
		edited := input.trimmed()
		if err := validateReplyInput(edited); err != nil {
			return nil, err
		}
		if err := reply.Edit(edited.Subject, edited.Message); err != nil {
			return nil, mapError(err, "reply", replyID)
		}
	}
	contact, err := s.loadContact(ctx, reply.ContactID)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, contact, reply)
}

// deliver hands the mail off first and only then records reply sent and
// contact replied together. A mail failure leaves both untouched.
func (s *ReplyService) deliver(ctx context.Context, contact *domain.Contact, reply *domain.Reply) (*domain.Reply, error) {
	body, err := mail.RenderReply(mail.ReplyData{
		SiteName:        s.siteName,
		ContactName:     contact.Name,
		Message:         reply.Message,
		OriginalMessage: contact.Message,
		ReceivedAt:      contact.CreatedAt,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	msg := mail.Message{
		To:      contact.Email,
		ReplyTo: s.replyTo,
		Subject: reply.Subject,
		Body:    body,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("reply delivery failed",
			zap.String("contact_id", contact.ID),
			zap.String("reply_id", reply.ID),
			zap.Error(err))
		return nil, apperrors.NewDeliveryError(err)
	}

	if err := reply.MarkSent(s.now().UTC()); err != nil {
		return nil, mapError(err, "reply", reply.ID)
	}
	if err := s.replies.CommitSent(ctx, reply); err != nil {
		s.logger.Error("reply delivered but not recorded",
			zap.String("contact_id", contact.ID),
			zap.String("reply_id", reply.ID),
			zap.Error(err))
		return nil, apperrors.NewReplyNotRecorded(reply.ID, err)
	}
	old := contact.Status
	contact.MarkReplied()

	s.logger.Info("reply sent", zap.String("contact_id", contact.ID), zap.String("reply_id", reply.ID), actorField(ctx))
	publishEvent(ctx, s.dispatcher, events.New(events.EventReplySent, contact.ID, replyPayload(reply)))
	if old != contact.Status {
		publishEvent(ctx, s.dispatcher, events.New(events.EventContactReplied, contact.ID, events.ContactStatusChangedPayload{
			OldStatus: old,
			NewStatus: contact.Status,
		}))
	}
	return reply, nil
}

// DeleteDraft removes a draft. Sent replies are kept.
func (s *ReplyService) DeleteDraft(ctx context.Context, replyID string) error {
	reply, err := s.Get(ctx, replyID)
	if err != nil {
		return err
	}
	if !reply.IsDraft() {
		return mapError(domain.ErrReplyAlreadySent, "reply", replyID)
	}
	return mapError(s.replies.Delete(ctx, replyID), "reply", replyID)
}

// ListForContact returns every reply of a contact, newest first.
func (s *ReplyService) ListForContact(ctx context.Context, contactID string) ([]domain.Reply, error) {
	if _, err := s.loadContact(ctx, contactID); err != nil {
		return nil, err
	}
	replies, err := s.replies.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// Get loads one reply.
func (s *ReplyService) Get(ctx context.Context, replyID string) (*domain.Reply, error) {
	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return nil, mapError(err, "reply", replyID)
	}
	return reply, nil
}

func (s *ReplyService) loadContact(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "contact", id)
	}
	return contact, nil
}

func replyPayload(reply *domain.Reply) events.ReplyPayload {
	return events.ReplyPayload{ReplyID: reply.ID, Status: reply.Status, Subject: reply.Subject}
}
