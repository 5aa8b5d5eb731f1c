package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/notify"
	"github.com/spec-kit/event-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartRelay subscribes the relay and returns its stop function. A nil relay
// yields a no-op stop.
func StartRelay(ctx context.Context, relay *notify.RedisRelay, logger *zap.Logger) (func(), error) {
	if relay == nil {
		return func() {}, nil
	}
	if err := relay.Start(ctx); err != nil {
		logger.Error("redis relay subscribe failed", zap.Error(err))
		return func() {}, err
	}
	return relay.Stop, nil
}
