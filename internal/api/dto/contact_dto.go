package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ContactRequest is the public contact form payload. It is accepted as JSON
// or as a urlencoded form.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// ContactSubmitted response.
type ContactSubmitted struct {
	ID     string               `json:"id"`
	Status domain.ContactStatus `json:"status"`
}

// ContactResponse represents a contact in the admin API.
type ContactResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Message   string               `json:"message"`
	Status    domain.ContactStatus `json:"status"`
	IPAddress string               `json:"ip_address,omitempty"`
	UserAgent string               `json:"user_agent,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ContactDetailResponse adds the reply thread.
type ContactDetailResponse struct {
	ContactResponse
	Replies []ReplyResponse `json:"replies"`
}

// ContactListResponse is one page of contacts.
type ContactListResponse struct {
	Items    []ContactResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ContactStatsResponse counts contacts per status.
type ContactStatsResponse struct {
	New     int `json:"new"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
	Total   int `json:"total"`
}

// NewContactResponse maps a domain contact.
func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Status:    c.Status,
		IPAddress: c.IPAddress,
		UserAgent: c.UserAgent,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewContactStatsResponse maps stats.
func NewContactStatsResponse(s domain.ContactStats) ContactStatsResponse {
	return ContactStatsResponse{New: s.New, Read: s.Read, Replied: s.Replied, Total: s.Total()}
}
