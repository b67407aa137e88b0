// Package realtime fans out leaderboard refresh signals and user
// notifications over websockets.
//
// Frames are signals, not state. A leaderboard frame tells subscribers
// that scores changed and why; it never carries the scores themselves.
// Clients re-fetch through the HTTP API, whose role scoping stays the
// single source of truth for what a caller may see.
package realtime

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/dalemusser/hackhub/internal/app/system/stats"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Frame is the single envelope every websocket message uses.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Frame types.
const (
	FrameLeaderboard  = "leaderboard.updated"
	FrameNotification = "notification"
)

// leaderboardPayload is the refresh signal body. Deliberately minimal.
type leaderboardPayload struct {
	EventID string    `json:"event_id"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"at"`
}

// peer is one connected websocket client. The mutex serializes frame
// writes; concurrent broadcasts must not interleave JSON on the wire.
type peer struct {
	id  string
	mu  sync.Mutex
	enc *json.Encoder
}

func newPeer(w io.Writer) *peer {
	return &peer{id: uuid.NewString(), enc: json.NewEncoder(w)}
}

func (p *peer) write(f Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(f)
}

// Hub tracks leaderboard rooms (keyed by event) and per-user channels.
// A slow or dead peer only fails its own write; fan-out continues.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*peer]struct{}
	users map[string]map[*peer]struct{}
	log   *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*peer]struct{}),
		users: make(map[string]map[*peer]struct{}),
		log:   logger,
	}
}

func (h *Hub) joinRoom(eventID string, p *peer) {
	h.mu.Lock()
	room, ok := h.rooms[eventID]
	if !ok {
		room = make(map[*peer]struct{})
		h.rooms[eventID] = room
	}
	room[p] = struct{}{}
	h.mu.Unlock()
	stats.Subscribers.WithLabelValues("leaderboard").Inc()
}

func (h *Hub) leaveRoom(eventID string, p *peer) {
	h.mu.Lock()
	if room, ok := h.rooms[eventID]; ok {
		delete(room, p)
		if len(room) == 0 {
			delete(h.rooms, eventID)
		}
	}
	h.mu.Unlock()
	stats.Subscribers.WithLabelValues("leaderboard").Dec()
}

func (h *Hub) joinUser(userID string, p *peer) {
	h.mu.Lock()
	chans, ok := h.users[userID]
	if !ok {
		chans = make(map[*peer]struct{})
		h.users[userID] = chans
	}
	chans[p] = struct{}{}
	h.mu.Unlock()
	stats.Subscribers.WithLabelValues("user").Inc()
}

func (h *Hub) leaveUser(userID string, p *peer) {
	h.mu.Lock()
	if chans, ok := h.users[userID]; ok {
		delete(chans, p)
		if len(chans) == 0 {
			delete(h.users, userID)
		}
	}
	h.mu.Unlock()
	stats.Subscribers.WithLabelValues("user").Dec()
}

// BroadcastLeaderboard signals every subscriber of the event's room
// that the leaderboard changed. Implements scoring.Broadcaster.
func (h *Hub) BroadcastLeaderboard(eventID primitive.ObjectID, reason string) {
	frame := Frame{
		Type: FrameLeaderboard,
		Payload: mustJSON(leaderboardPayload{
			EventID: eventID.Hex(),
			Reason:  reason,
			At:      time.Now().UTC(),
		}),
	}

	h.mu.Lock()
	subscribers := make([]*peer, 0, len(h.rooms[eventID.Hex()]))
	for p := range h.rooms[eventID.Hex()] {
		subscribers = append(subscribers, p)
	}
	h.mu.Unlock()

	for _, p := range subscribers {
		if err := p.write(frame); err != nil {
			h.log.Debug("leaderboard frame dropped",
				zap.String("peer", p.id), zap.Error(err))
			continue
		}
		stats.BroadcastsSent.WithLabelValues("leaderboard").Inc()
	}
}

// SendNotification pushes a payload to every open connection of each
// recipient. Users without a live connection simply miss the push; the
// notification itself is persisted and shows up on their next list.
func (h *Hub) SendNotification(userIDs []primitive.ObjectID, payload any) {
	frame := Frame{Type: FrameNotification, Payload: mustJSON(payload)}

	h.mu.Lock()
	var subscribers []*peer
	for _, id := range userIDs {
		for p := range h.users[id.Hex()] {
			subscribers = append(subscribers, p)
		}
	}
	h.mu.Unlock()

	for _, p := range subscribers {
		if err := p.write(frame); err != nil {
			h.log.Debug("notification frame dropped",
				zap.String("peer", p.id), zap.Error(err))
			continue
		}
		stats.BroadcastsSent.WithLabelValues("notification").Inc()
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
