package worker

import (
	"github.com/spec-kit/triage-dashboard/internal/events"
	"github.com/spec-kit/triage-dashboard/internal/realtime"
	"github.com/spec-kit/triage-dashboard/internal/service"
)

// StartNotificationWorker wires event subscribers: the notification log and
// the realtime broadcast bridge.
func StartNotificationWorker(notificationService *service.NotificationService, hub *realtime.Hub, dispatcher events.Dispatcher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if hub != nil {
		hub.RegisterEventBridge(dispatcher)
	}
}
