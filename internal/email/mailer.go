package email

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is an outbound email.
type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Text    string
	SentAt  time.Time
}

// outboxLimit bounds how many recent messages LogMailer keeps.
const outboxLimit = 50

// LogMailer is a development mailer. It writes messages to the log instead of
// delivering them and keeps the most recent outboxLimit in memory.
type LogMailer struct {
	from   string
	logger *zap.Logger

	mu     sync.Mutex
	outbox []Message
}

// NewLogMailer builds a mailer that sends as from.
func NewLogMailer(from string, logger *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// SendVerification "sends" the welcome mail carrying the verification token.
// The returned preview is empty because nothing leaves the process.
func (m *LogMailer) SendVerification(ctx context.Context, to, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg := Message{
		ID:      uuid.NewString(),
		From:    m.from,
		To:      to,
		Subject: "Welcome to Event App - Verify Your Email",
		Text:    fmt.Sprintf("Welcome to Event App! Verification token: %s", token),
		SentAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	if len(m.outbox) == outboxLimit {
		copy(m.outbox, m.outbox[1:])
		m.outbox = m.outbox[:outboxLimit-1]
	}
	m.outbox = append(m.outbox, msg)
	m.mu.Unlock()

	m.logger.Info("verification email queued",
		zap.String("message_id", msg.ID),
		zap.String("to", to),
		zap.String("from", m.from))
	return "", nil
}

// Sent returns a copy of the retained messages, oldest first.
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.outbox...)
}
