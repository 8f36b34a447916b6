// Package notify fans domain events out to websocket subscribers grouped in rooms.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AdminRoom receives every administrative event and system telemetry.
const AdminRoom = "admin"

func TeamRoom(teamID int) string { return fmt.Sprintf("team_%d", teamID) }

func TournamentRoom(tournamentID int) string { return fmt.Sprintf("tournament_%d", tournamentID) }

const (
	EventRegistrationCreated   = "registration.created"
	EventRegistrationUpdated   = "registration.updated"
	EventRegistrationWithdrawn = "registration.withdrawn"
	EventPaymentCreated        = "payment.created"
	EventPaymentUpdated        = "payment.updated"
	EventTeamUpdated           = "team.updated"
	EventTeamDeleted           = "team.deleted"
	EventInviteCreated         = "invite.created"
	EventInviteUpdated         = "invite.updated"
	EventTournamentUpdated     = "tournament.updated"
	EventSystemStatus          = "system.status"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room"`
	SentAt  time.Time   `json:"sent_at"`
}

// Publisher delivers an event to every subscriber of the given rooms.
type Publisher interface {
	Publish(eventType string, payload interface{}, rooms ...string)
}

type discard struct{}

func (discard) Publish(string, interface{}, ...string) {}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type Hub struct {
	logger     zerolog.Logger
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:     logger.With().Str("component", "notify").Logger(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

// Run processes subscriptions until ctx is cancelled, then disconnects all clients.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			clients, ok := h.rooms[c.Room]
			if !ok {
				clients = make(map[*Client]struct{})
				h.rooms[c.Room] = clients
			}
			clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug().Str("room", c.Room).Int("clients", len(clients)).Msg("client subscribed")

		case c := <-h.unregister:
			h.remove(c)

		case <-ctx.Done():
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.Room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	close(c.Send)
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, c.Room)
	}
	h.logger.Debug().Str("room", c.Room).Int("clients", len(clients)).Msg("client unsubscribed")
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// RoomSize reports the number of subscribers currently in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) Publish(eventType string, payload interface{}, rooms ...string) {
	now := time.Now().UTC()
	for _, room := range rooms {
		h.broadcastToRoom(room, Message{Type: eventType, Payload: payload, Room: room, SentAt: now})
	}
}

func (h *Hub) broadcastToRoom(room string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("room", room).Str("type", msg.Type).Msg("failed to marshal event")
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			h.logger.Warn().Str("room", room).Msg("client send buffer full, dropping event")
		}
	}
}
