package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util/errorutil"
)

// mapError turns repository and domain sentinels into API errors. Anything
// unrecognised is returned unchanged and ends up as INTERNAL_ERROR.
func mapError(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, domain.ErrReplyAlreadySent):
		return apperrors.NewConflict(apperrors.CodeReplyAlreadySent, "reply has already been sent", map[string]any{"id": id})
	case errors.Is(err, domain.ErrInvalidContactTransition):
		return apperrors.NewConflict(apperrors.CodeInvalidTransition, "contact status cannot move backwards", map[string]any{"id": id})
	case errors.Is(err, repository.ErrConstraint):
		return apperrors.NewConflict("", "change rejected by a data constraint", map[string]any{"id": id})
	}
	return err
}
