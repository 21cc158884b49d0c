package worker

import (
	"github.com/spec-kit/portfolio-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers. Pass the
// service a dispatcher backed by an EventQueue to run them in the background.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
