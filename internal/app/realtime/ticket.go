// internal/app/realtime/ticket.go
package realtime

import (
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/gorilla/securecookie"
)

// Browsers cannot attach headers to websocket dials, so the session
// cookie is traded for a short-lived signed ticket over the regular
// authenticated API, and the ticket rides the dial URL instead.
const (
	ticketName       = "hackhub-ws-ticket"
	ticketTTLSeconds = 60
)

// Ticket identifies a websocket subscriber for the lifetime of one dial.
type Ticket struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TicketCodec signs and verifies websocket tickets.
type TicketCodec struct {
	sc *securecookie.SecureCookie
}

// NewTicketCodec builds a codec from the session keys. Expiry is
// enforced by the codec's MaxAge; an old ticket fails decoding.
func NewTicketCodec(hashKey, blockKey []byte) *TicketCodec {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(ticketTTLSeconds)
	return &TicketCodec{sc: sc}
}

// Issue signs a ticket for the given user.
func (c *TicketCodec) Issue(t Ticket) (string, error) {
	return c.sc.Encode(ticketName, t)
}

// Decode verifies a ticket string. Tampered, expired, or empty tickets
// all come back as ErrUnauthorized.
func (c *TicketCodec) Decode(raw string) (Ticket, error) {
	if raw == "" {
		return Ticket{}, apierr.ErrUnauthorized
	}
	var t Ticket
	if err := c.sc.Decode(ticketName, raw, &t); err != nil {
		return Ticket{}, apierr.ErrUnauthorized
	}
	if t.UserID == "" {
		return Ticket{}, apierr.ErrUnauthorized
	}
	return t, nil
}
