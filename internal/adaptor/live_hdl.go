package adaptor

import (
	"net/http"

	"taxi-booking/pkg/events"

	"go.uber.org/zap"
)

// LiveHandler streams ride events to admins over WebSocket.
type LiveHandler struct {
	hub *events.Hub
	log *zap.Logger
}

func NewLiveHandler(hub *events.Hub, log *zap.Logger) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		log: log.With(zap.String("handler", "live")),
	}
}

// Rides handles GET /api/admin/rides/live
func (h *LiveHandler) Rides(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.hub.Serve(w, r, identity.UserID()); err != nil {
		// the upgrader has already answered the request
		h.log.Warn("Live feed connection failed", zap.Error(err))
		return
	}
	h.log.Info("Live feed connected",
		zap.String("user_id", identity.UserID().String()),
		zap.Int("clients", h.hub.Clients(r.Context())))
}
