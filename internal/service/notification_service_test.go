package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/mail"
	"github.com/spec-kit/portfolio-service/internal/mock"
)

func submittedEvent() events.Event {
	return events.New(events.EventContactSubmitted, "c-1", events.ContactSubmittedPayload{
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hello, testing the form.",
		CreatedAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	})
}

func TestNotificationService_MailsOperatorOnSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailDispatcher(ctrl)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewNotificationService(dispatcher, mailer, zap.NewNop(), config.MailConfig{
		OperatorTo: "me@example.com",
		SiteName:   "Portfolio",
	})
	svc.RegisterHandlers()

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
		assert.Equal(t, "me@example.com", msg.To)
		assert.Equal(t, "ada@example.com", msg.ReplyTo)
		assert.Equal(t, "[Portfolio] New contact from Ada", msg.Subject)
		assert.Contains(t, msg.Body, "Hello, testing the form.")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), submittedEvent()))
}

func TestNotificationService_FailureIsReturnedToDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailDispatcher(ctrl)
	svc := NewNotificationService(nil, mailer, zap.NewNop(), config.MailConfig{OperatorTo: "me@example.com"})

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	err := svc.handleContactSubmitted(context.Background(), submittedEvent())
	assert.ErrorContains(t, err, "smtp down")
}

func TestNotificationService_SkipsWithoutOperatorAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailDispatcher(ctrl)
	svc := NewNotificationService(nil, mailer, zap.NewNop(), config.MailConfig{})

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
	assert.NoError(t, svc.handleContactSubmitted(context.Background(), submittedEvent()))
}

func TestNotificationService_RejectsUnexpectedPayload(t *testing.T) {
	svc := NewNotificationService(nil, nil, zap.NewNop(), config.MailConfig{OperatorTo: "me@example.com"})
	err := svc.handleContactSubmitted(context.Background(), events.New(events.EventContactSubmitted, "c-1", "oops"))
	assert.Error(t, err)
}
