package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/notify"
)

// PayloadMapper converts a lifecycle payload into the shape pushed to clients.
type PayloadMapper func(payload any) any

// NotificationService pushes domain events to websocket listeners.
type NotificationService struct {
	dispatcher  events.Dispatcher
	broadcaster notify.Broadcaster
	mapper      PayloadMapper
	logger      *zap.Logger
}

// NewNotificationService creates the service. A nil mapper sends payloads unchanged.
func NewNotificationService(dispatcher events.Dispatcher, broadcaster notify.Broadcaster, mapper PayloadMapper, logger *zap.Logger) *NotificationService {
	if mapper == nil {
		mapper = func(payload any) any { return payload }
	}
	return &NotificationService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		mapper:      mapper,
		logger:      logger,
	}
}

// RegisterHandlers subscribes to every lifecycle event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil || n.broadcaster == nil {
		return
	}
	n.dispatcher.SubscribeAll(n.handle)
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	msg := notify.Message{Type: string(event.Type), Data: n.mapper(event.Payload)}
	if err := n.broadcaster.Broadcast(ctx, msg); err != nil {
		return err
	}
	n.logger.Debug("notification broadcast",
		zap.String("type", msg.Type),
		zap.String("event_id", event.EventID),
		zap.String("actor", event.Actor.UserID))
	return nil
}
