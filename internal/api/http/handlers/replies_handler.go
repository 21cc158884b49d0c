package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

// RepliesHandler manages drafts and sent replies.
type RepliesHandler struct {
	replies *service.ReplyService
}

// NewRepliesHandler constructs handler.
func NewRepliesHandler(replies *service.ReplyService) *RepliesHandler {
	return &RepliesHandler{replies: replies}
}

// ListForContact GET /api/admin/contacts/:id/replies.
func (h *RepliesHandler) ListForContact(c *fiber.Ctx) error {
	replies, err := h.replies.ListForContact(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReplyResponses(replies)})
}

// Create POST /api/admin/contacts/:id/replies.
func (h *RepliesHandler) Create(c *fiber.Ctx) error {
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.ReplyInput{Subject: req.Subject, Message: req.Message}

	var (
		reply *domain.Reply
		err   error
	)
	if req.Send {
		reply, err = h.replies.SendReply(c.UserContext(), c.Params("id"), input)
	} else {
		reply, err = h.replies.SaveDraft(c.UserContext(), c.Params("id"), input)
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReplyResponse(reply)})
}

// Get GET /api/admin/replies/:id.
func (h *RepliesHandler) Get(c *fiber.Ctx) error {
	reply, err := h.replies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReplyResponse(reply)})
}

// Update PUT /api/admin/replies/:id.
func (h *RepliesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reply, err := h.replies.UpdateDraft(c.UserContext(), c.Params("id"), service.ReplyInput{
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReplyResponse(reply)})
}

// Send POST /api/admin/replies/:id/send.
func (h *RepliesHandler) Send(c *fiber.Ctx) error {
	var input *service.ReplyInput
	if len(c.Body()) > 0 {
		var req dto.SendDraftRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		switch {
		case req.Subject == nil && req.Message == nil:
		case req.Subject == nil:
			return apperrors.NewValidationError("edits before sending need both subject and message",
				map[string]any{"subject": "required when message is given"})
		case req.Message == nil:
			return apperrors.NewValidationError("edits before sending need both subject and message",
				map[string]any{"message": "required when subject is given"})
		default:
			input = &service.ReplyInput{Subject: *req.Subject, Message: *req.Message}
		}
	}
	reply, err := h.replies.SendDraft(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReplyResponse(reply)})
}

// Delete DELETE /api/admin/replies/:id.
func (h *RepliesHandler) Delete(c *fiber.Ctx) error {
	if err := h.replies.DeleteDraft(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
