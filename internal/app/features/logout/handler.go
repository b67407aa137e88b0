// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler clears the caller's session.
type Handler struct {
	Log *zap.Logger
}

// NewHandler creates a logout Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandleLogout processes POST /api/logout. Logging out without a
// session is fine; the result is the same signed-out state.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: session clear failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
