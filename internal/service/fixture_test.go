package service

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/api/dto"
	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/config"
	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/email"
	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/notify"
	"github.com/spec-kit/event-service/internal/testutil"
)

type listener struct {
	mu     sync.Mutex
	frames []map[string]any
}

func (l *listener) WriteMessage(_ int, data []byte) error {
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	l.mu.Lock()
	l.frames = append(l.frames, msg)
	l.mu.Unlock()
	return nil
}

func (l *listener) Close() error { return nil }

func (l *listener) messages() []map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]map[string]any(nil), l.frames...)
}

type fixture struct {
	store     *testutil.Store
	tokens    *auth.TokenManager
	mailer    *email.LogMailer
	hub       *notify.Hub
	auth      *AuthService
	events    *EventService
	rsvps     *RSVPService
	favorites *FavoriteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := testutil.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	hub := notify.NewHub(logger, nil)
	t.Cleanup(hub.Close)
	NewNotificationService(dispatcher, hub, dto.NotificationPayload, logger).RegisterHandlers()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mailer := email.NewLogMailer("noreply@eventapp.com", logger)
	cfg := config.AuthConfig{BcryptCost: 4, VerificationToken: "mock-token"}

	return &fixture{
		store:  store,
		tokens: tokens,
		mailer: mailer,
		hub:    hub,
		auth: NewAuthService(cfg, AuthDependencies{
			UserRepo:  store.Users(),
			EventRepo: store.Events(),
			RSVPRepo:  store.RSVPs(),
			Tokens:    tokens,
			Mailer:    mailer,
			Logger:    logger,
		}),
		events: NewEventService(EventDependencies{
			EventRepo:  store.Events(),
			RSVPRepo:   store.RSVPs(),
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		rsvps: NewRSVPService(RSVPDependencies{
			EventRepo:  store.Events(),
			RSVPRepo:   store.RSVPs(),
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		favorites: NewFavoriteService(store.Events(), store.Favorites()),
	}
}

func (f *fixture) listen(t *testing.T) *listener {
	t.Helper()
	l := &listener{}
	if _, err := f.hub.Register(l); err != nil {
		t.Fatalf("register listener: %v", err)
	}
	return l
}

func identity(u *domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
