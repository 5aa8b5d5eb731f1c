package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextMessage is the websocket text frame opcode (RFC 6455).
const TextMessage = 1

// ErrHubClosed is returned by Register after Close.
var ErrHubClosed = errors.New("notify: hub closed")

// Message is the JSON envelope pushed to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broadcaster delivers a message to every connected client.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg Message) error
}

// Conn is the write side of a client connection.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Recorder receives fan-out statistics.
type Recorder interface {
	SetClients(n int)
	RecordBroadcast(msgType string, failed int)
}

type nopRecorder struct{}

func (nopRecorder) SetClients(int)              {}
func (nopRecorder) RecordBroadcast(string, int) {}

// Client is a registered connection. Writes to it are serialized.
type Client struct {
	ID   string
	mu   sync.Mutex
	conn Conn
}

// Send writes one text frame to the client.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(TextMessage, payload)
}

// SendJSON encodes v and sends it.
func (c *Client) SendJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(payload)
}

// Hub is the registry of live websocket clients. It is created at server start and
// closed at shutdown.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	closed   bool
	logger   *zap.Logger
	recorder Recorder
}

// NewHub creates an empty registry. recorder may be nil.
func NewHub(logger *zap.Logger, recorder Recorder) *Hub {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Hub{
		clients:  make(map[string]*Client),
		logger:   logger,
		recorder: recorder,
	}
}

// Register adds conn under a fresh id.
func (h *Hub) Register(conn Conn) (*Client, error) {
	client := &Client{ID: uuid.NewString(), conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	h.clients[client.ID] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.recorder.SetClients(total)
	h.logger.Info("client connected", zap.String("socket_id", client.ID), zap.Int("total", total))
	return client, nil
}

// Unregister removes the client with id. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	if _, ok := h.clients[id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, id)
	total := len(h.clients)
	h.mu.Unlock()

	h.recorder.SetClients(total)
	h.logger.Info("client disconnected", zap.String("socket_id", id), zap.Int("total", total))
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast serializes msg once and writes it to every registered client.
// A failed write is logged and does not stop delivery to the others.
func (h *Hub) Broadcast(_ context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.deliver(msg.Type, payload)
	return nil
}

// deliver writes an already encoded message. The client set is snapshotted so
// registrations during delivery never mutate the map being iterated.
func (h *Hub) deliver(msgType string, payload []byte) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent, failed := 0, 0
	for _, c := range targets {
		if err := c.Send(payload); err != nil {
			failed++
			h.logger.Warn("broadcast write failed", zap.String("socket_id", c.ID), zap.Error(err))
			continue
		}
		sent++
	}

	h.recorder.RecordBroadcast(msgType, failed)
	h.logger.Debug("broadcast", zap.String("type", msgType), zap.Int("clients", sent))
	return sent
}

// Close disconnects every client and rejects further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*Client)
	h.closed = true
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
	h.recorder.SetClients(0)
}
