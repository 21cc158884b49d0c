package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// AdminContactsHandler manages the contact inbox for administrators.
type AdminContactsHandler struct {
	contacts *service.ContactService
	replies  *service.ReplyService
}

// NewAdminContactsHandler constructs handler.
func NewAdminContactsHandler(contacts *service.ContactService, replies *service.ReplyService) *AdminContactsHandler {
	return &AdminContactsHandler{contacts: contacts, replies: replies}
}

// List GET /api/admin/contacts.
func (h *AdminContactsHandler) List(c *fiber.Ctx) error {
	filter := service.ContactListFilter{
		Search:   c.Query("q"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := domain.ContactStatus(strings.ToLower(raw))
		filter.Status = &status
	}

	page, err := h.contacts.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.NewContactResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.ContactListResponse{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}})
}

// Stats GET /api/admin/contacts/stats.
func (h *AdminContactsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.contacts.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContactStatsResponse(stats)})
}

// Get GET /api/admin/contacts/:id. Viewing marks the contact read unless mark_read=false.
func (h *AdminContactsHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	var (
		contact *domain.Contact
		err     error
	)
	if c.QueryBool("mark_read", true) {
		contact, err = h.contacts.MarkRead(ctx, id)
	} else {
		contact, err = h.contacts.Get(ctx, id)
	}
	if err != nil {
		return err
	}

	replies, err := h.replies.ListForContact(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ContactDetailResponse{
		ContactResponse: dto.NewContactResponse(contact),
		Replies:         dto.NewReplyResponses(replies),
	}})
}

// MarkRead POST /api/admin/contacts/:id/read.
func (h *AdminContactsHandler) MarkRead(c *fiber.Ctx) error {
	contact, err := h.contacts.MarkRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContactResponse(contact)})
}

// MarkReplied POST /api/admin/contacts/:id/replied.
func (h *AdminContactsHandler) MarkReplied(c *fiber.Ctx) error {
	contact, err := h.contacts.MarkReplied(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContactResponse(contact)})
}

// Delete DELETE /api/admin/contacts/:id.
func (h *AdminContactsHandler) Delete(c *fiber.Ctx) error {
	if err := h.contacts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
