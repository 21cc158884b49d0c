package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ContactService coordinates the contact inbox.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ContactDependencies bundles collaborators for the contact service.
type ContactDependencies struct {
	ContactRepo repository.ContactRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name      string
	Email     string
	Message   string
	IPAddress string
	UserAgent string
}

// ContactListFilter describes admin inbox filters. Page is 1-based.
type ContactListFilter struct {
	Status   *domain.ContactStatus
	Search   string
	Page     int
	PageSize int
}

// ContactPage is one page of the inbox.
type ContactPage struct {
	Items    []domain.Contact
	Total    int
	Page     int
	PageSize int
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{
		contacts:   deps.ContactRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Submit stores a new contact in state new and announces it.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	if err := validateContactInput(input); err != nil {
		return nil, err
	}

	contact := domain.NewContact(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Message),
	)
	contact.IPAddress = input.IPAddress
	contact.UserAgent = input.UserAgent

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.logger.Info("contact submitted", zap.String("contact_id", contact.ID))

	publishEvent(ctx, s.dispatcher, events.New(events.EventContactSubmitted, contact.ID, events.ContactSubmittedPayload{
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
	}))
	return contact, nil
}

// List returns one page of contacts, newest first.
func (s *ContactService) List(ctx context.Context, filter ContactListFilter) (*ContactPage, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid filter", map[string]any{"status": "unknown status"})
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	repoFilter := repository.ContactFilter{
		Status: filter.Status,
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		repoFilter.SearchTerm = &search
	}

	items, err := s.contacts.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.contacts.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return &ContactPage{Items: items, Total: total, Page: page, PageSize: size}, nil
}

// Get loads a contact without changing its status.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "contact", id)
	}
	return contact, nil
}

// MarkRead moves a new contact to read. Calling it again is a no-op.
func (s *ContactService) MarkRead(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := contact.Status
	if !contact.MarkRead() {
		return contact, nil
	}
	return s.saveStatus(ctx, contact, old, events.EventContactRead)
}

// MarkReplied moves a contact to replied without sending anything.
func (s *ContactService) MarkReplied(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := contact.Status
	if !contact.MarkReplied() {
		return contact, nil
	}
	return s.saveStatus(ctx, contact, old, events.EventContactReplied)
}

func (s *ContactService) saveStatus(ctx context.Context, contact *domain.Contact, old domain.ContactStatus, eventType events.EventType) (*domain.Contact, error) {
	want := contact.Status
	if err := s.contacts.UpdateStatus(ctx, contact); err != nil {
		return nil, mapError(err, "contact", contact.ID)
	}
	if contact.Status != want {
		// someone else moved it further along first
		return contact, nil
	}
	publishEvent(ctx, s.dispatcher, events.New(eventType, contact.ID, events.ContactStatusChangedPayload{
		OldStatus: old,
		NewStatus: contact.Status,
	}))
	return contact, nil
}

// Delete removes a contact together with its replies.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return mapError(err, "contact", id)
	}
	s.logger.Info("contact deleted", zap.String("contact_id", id), actorField(ctx))
	publishEvent(ctx, s.dispatcher, events.New(events.EventContactDeleted, id, nil))
	return nil
}

// Stats counts contacts per status.
func (s *ContactService) Stats(ctx context.Context) (domain.ContactStats, error) {
	return s.contacts.Stats(ctx)
}
