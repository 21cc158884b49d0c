package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/mock"
	"github.com/spec-kit/portfolio-service/internal/service"
)

func TestStartNotificationWorker_SubscribesOperatorMail(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailDispatcher(ctrl)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	StartNotificationWorker(service.NewNotificationService(dispatcher, mailer, zap.NewNop(), config.MailConfig{
		OperatorTo: "me@example.com",
	}))

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, dispatcher.Publish(context.Background(),
		events.New(events.EventContactSubmitted, "c-1", events.ContactSubmittedPayload{Name: "Ada"})))
}

func TestStartNotificationWorker_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { StartNotificationWorker(nil) })
}
