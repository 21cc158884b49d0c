package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}

// actorField names the admin behind ctx, if any.
func actorField(ctx context.Context) zap.Field {
	if p, ok := auth.PrincipalFrom(ctx); ok {
		return zap.String("actor", p.SubjectID)
	}
	return zap.Skip()
}
