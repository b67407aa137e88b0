// internal/app/realtime/handler.go
package realtime

import (
	"io"
	"net/http"

	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/net/websocket"
)

// LeaderboardHandler upgrades GET /ws/leaderboard/{eventID}. The room
// is public, matching the HTTP leaderboard: frames carry no scores, so
// there is nothing role-scoped to leak.
func (h *Hub) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")
		if !inputval.IsValidObjectID(eventID) {
			http.Error(w, "invalid event id", http.StatusBadRequest)
			return
		}
		// Normalize to canonical hex for the room key.
		oid, _ := primitive.ObjectIDFromHex(eventID)

		websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()
			p := newPeer(conn)
			h.joinRoom(oid.Hex(), p)
			defer h.leaveRoom(oid.Hex(), p)

			// Push-only channel: drain (and ignore) anything the client
			// sends until it hangs up.
			_, _ = io.Copy(io.Discard, conn)
		}).ServeHTTP(w, r)
	}
}

// UserHandler upgrades GET /ws/user?ticket=... into the caller's
// personal notification channel. The ticket stands in for the session
// cookie; no ticket, no upgrade.
func (h *Hub) UserHandler(codec *TicketCodec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := codec.Decode(r.URL.Query().Get("ticket"))
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()
			p := newPeer(conn)
			h.joinUser(ticket.UserID, p)
			defer h.leaveUser(ticket.UserID, p)

			_, _ = io.Copy(io.Discard, conn)
		}).ServeHTTP(w, r)
	}
}
