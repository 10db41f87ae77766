package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-dashboard/internal/events"
)

// NotificationService turns dashboard events into user-facing notification
// messages. The messages mirror what the presentation layer shows as toasts;
// here they land in the structured log.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	message := "New ticket created!"
	if payload, ok := event.Payload.(events.TicketCreatedPayload); ok && payload.AutoDetected {
		message = fmt.Sprintf("New ticket created! AI detected: %s", payload.Category)
	}
	n.logger.Info(message, zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	message := fmt.Sprintf("Ticket %s status changed", event.TicketID)
	if payload, ok := event.Payload.(events.TicketStatusChangedPayload); ok {
		message = fmt.Sprintf("Ticket %s marked as %s", event.TicketID, payload.NewStatus)
	}
	n.logger.Info(message, zap.String("ticket_id", event.TicketID))
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	message := fmt.Sprintf("Unassigned %s", event.TicketID)
	if payload, ok := event.Payload.(events.TicketAssignedPayload); ok && payload.Agent != "" {
		message = fmt.Sprintf("Assigned %s to %s", event.TicketID, payload.Agent)
	}
	n.logger.Info(message, zap.String("ticket_id", event.TicketID))
	return nil
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("Ticket details updated successfully",
		zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}
