package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/myrelief/backend/models"
	"github.com/nats-io/nats.go"
)

// NotificationSubject is the NATS subject committed notifications are published on
const NotificationSubject = "notifications.events"

// NotificationEvent is the wire format pushed to WebSocket clients
type NotificationEvent struct {
	ID        uint                    `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NotifyHub bridges committed notifications from NATS to admin WebSocket
// clients for live badge updates. The database rows are the source of truth;
// the hub is best-effort.
type NotifyHub struct {
	natsConn *nats.Conn
	natsSub  *nats.Subscription

	clients   map[*NotifyClient]bool
	clientsMu sync.RWMutex

	register   chan *NotifyClient
	unregister chan *NotifyClient
}

// NewNotifyHub creates a hub and subscribes it to the notification subject
func NewNotifyHub(natsConn *nats.Conn) (*NotifyHub, error) {
	h := &NotifyHub{
		natsConn:   natsConn,
		clients:    make(map[*NotifyClient]bool),
		register:   make(chan *NotifyClient),
		unregister: make(chan *NotifyClient),
	}

	sub, err := natsConn.Subscribe(NotificationSubject, func(msg *nats.Msg) {
		h.broadcast(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	h.natsSub = sub
	return h, nil
}

// Register adds a client to the hub
func (h *NotifyHub) Register(client *NotifyClient) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *NotifyHub) Run() {
	log.Println("🔔 Notification hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("🔔 Client connected: %s", client.remoteAddr)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("🔔 Client disconnected: %s", client.remoteAddr)
		}
	}
}

// PublishNotification puts a committed notification on the NATS subject.
// Implements Publisher.
func (h *NotifyHub) PublishNotification(n *models.Notification) {
	event := NotificationEvent{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Failed to encode notification event: %v", err)
		return
	}
	if err := h.natsConn.Publish(NotificationSubject, data); err != nil {
		log.Printf("⚠️ Failed to publish notification event: %v", err)
	}
}

// broadcast fans an event out to every connected client
func (h *NotifyHub) broadcast(data []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client buffer full, drop the event
		}
	}
}

// HubStats holds hub statistics for the stats endpoint
type HubStats struct {
	Clients int `json:"clients"`
}

func (h *NotifyHub) Stats() HubStats {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return HubStats{Clients: len(h.clients)}
}
