package websocket

import (
	"context"
	"encoding/json"
	"time"

	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

const (
	hubModule = "LEAD_FEED"
	// FeedChannel carries feed frames between instances.
	FeedChannel = "lead_feed"
)

// Frame is what admins receive for every lead event.
type Frame struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Hub pushes lead events to the connected admin dashboards. With Redis the
// frame goes through FeedChannel so every instance, this one included,
// delivers it once to its own clients.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	rdb    *redis.Client
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Info(hubModule, "Admin connected", map[string]interface{}{"admin_id": client.AdminID, "clients": len(h.clients)})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info(hubModule, "Admin disconnected", map[string]interface{}{"admin_id": client.AdminID})
			}

		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- frame:
				default:
					h.logger.Warn(hubModule, "Send buffer full, dropping admin", map[string]interface{}{"admin_id": client.AdminID})
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Publish implements events.Publisher. Only lead events reach the feed.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeLeadCreated, events.TypeLeadStatusChanged:
	default:
		return nil
	}

	data, err := json.Marshal(Frame{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	if h.rdb != nil {
		return h.rdb.Publish(ctx, FeedChannel, data).Err()
	}
	h.deliver(data)
	return nil
}

// deliver never blocks the caller; a stalled hub loses the frame.
func (h *Hub) deliver(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn(hubModule, "Broadcast queue full, frame dropped", nil)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, FeedChannel)
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if !json.Valid([]byte(msg.Payload)) {
				h.logger.Warn(hubModule, "Ignoring malformed feed frame", nil)
				continue
			}
			h.deliver([]byte(msg.Payload))
		}
	}
}
