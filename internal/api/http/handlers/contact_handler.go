package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *zap.Logger
}

// NewContactHandler constructs handler.
func NewContactHandler(contacts *service.ContactService, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{contacts: contacts, logger: logger}
}

// Submit POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return withInput(apperrors.NewValidationError("invalid payload", nil), req)
	}

	contact, err := h.contacts.Submit(c.UserContext(), service.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeValidationFailed) {
			return withInput(err, req)
		}
		h.logger.Error("contact submission failed", zap.Error(err))
		return withInput(&apperrors.DomainError{
			Code:       apperrors.CodeInternal,
			Message:    "your message could not be sent right now, please try again later",
			HTTPStatus: fiber.StatusInternalServerError,
			Err:        err,
		}, req)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    dto.ContactSubmitted{ID: contact.ID, Status: contact.Status},
		"message": "thank you, your message has been received",
	})
}

// withInput echoes the submitted form back so the client can re-populate it.
func withInput(err error, req dto.ContactRequest) error {
	de := apperrors.ToDomainError(err)
	details := make(map[string]any, len(de.Details)+1)
	for k, v := range de.Details {
		details[k] = v
	}
	details["input"] = fiber.Map{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}
	out := *de
	out.Details = details
	return &out
}
