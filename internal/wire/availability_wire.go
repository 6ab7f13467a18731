package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler, auth, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/availabilities/dates", availabilityHandler.Dates)
	r.Get("/api/availabilities/times", availabilityHandler.Times) // ?date=YYYY-MM-DD

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Route("/api/admin/availabilities", func(r chi.Router) {
		r.Get("/", availabilityHandler.List)
		r.Post("/", availabilityHandler.Create)
		r.Get("/{id}", availabilityHandler.Get)
		r.Put("/{id}/toggle", availabilityHandler.Toggle)
		r.Delete("/{id}", availabilityHandler.Delete) // ?confirm=true
	})
}
