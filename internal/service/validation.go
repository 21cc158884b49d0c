package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

const (
	maxNameLength         = 255
	maxEmailLength        = 255
	maxContactMessage     = 5000
	maxReplySubjectLength = 255
	maxReplyMessage       = 10000
)

type fieldErrors map[string]any

func (f fieldErrors) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		f[field] = field + " is required"
		return false
	}
	return true
}

func (f fieldErrors) maxLength(field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		f[field] = field + " is too long"
	}
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError(message, f)
}

func validateContactInput(input ContactInput) error {
	fields := fieldErrors{}
	if fields.required("name", input.Name) {
		fields.maxLength("name", input.Name, maxNameLength)
	}
	if fields.required("email", input.Email) {
		if !validEmail(input.Email) {
			fields["email"] = "email must be a valid address"
		} else {
			fields.maxLength("email", input.Email, maxEmailLength)
		}
	}
	if fields.required("message", input.Message) {
		fields.maxLength("message", input.Message, maxContactMessage)
	}
	return fields.err("please check the highlighted fields")
}

func validateReplyInput(input ReplyInput) error {
	fields := fieldErrors{}
	if fields.required("subject", input.Subject) {
		fields.maxLength("subject", input.Subject, maxReplySubjectLength)
	}
	if fields.required("message", input.Message) {
		fields.maxLength("message", input.Message, maxReplyMessage)
	}
	return fields.err("reply is incomplete")
}

// validEmail accepts a bare address only, no display name.
func validEmail(raw string) bool {
	addr := strings.TrimSpace(raw)
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr && strings.Contains(addr[strings.LastIndex(addr, "@"):], ".")
}
