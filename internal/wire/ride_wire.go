package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRide(
	r chi.Router,
	rideHandler *adaptor.RideHandler,
	liveHandler *adaptor.LiveHandler,
	auth, admin func(http.Handler) http.Handler,
) {
	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Route("/api/admin/rides", func(r chi.Router) {
		r.Get("/", rideHandler.List) // ?status=pending&date=week
		r.Get("/live", liveHandler.Rides)
		r.Get("/{id}", rideHandler.Get)
		r.Put("/{id}/status", rideHandler.UpdateStatus)
	})
}
