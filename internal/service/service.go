package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/repository"
	apperrors "github.com/spec-kit/event-service/pkg/util/errorutil"
)

// publisher emits domain events. Delivery failures are logged and never fail the
// originating operation.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("domain event delivery failed",
			zap.String("type", string(event.Type)),
			zap.String("event_id", event.EventID),
			zap.Error(err))
	}
}

func actorOf(id domain.Identity) events.Actor {
	return events.Actor{UserID: id.UserID, Role: id.Role}
}

// repoError maps repository sentinels onto the error taxonomy.
func repoError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", nil)
	}
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	return apperrors.NewInternalError(err)
}
