package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTaxi(r chi.Router, taxiHandler *adaptor.TaxiHandler, auth, admin func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/taxis", taxiHandler.ListAvailable)
	r.Get("/api/taxis/{id}/quote", taxiHandler.Quote)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Route("/api/admin/taxis", func(r chi.Router) {
		r.Get("/", taxiHandler.ListAll)
		r.Post("/", taxiHandler.Create)
		r.Get("/{id}", taxiHandler.Get)
		r.Put("/{id}", taxiHandler.Update)
		r.Delete("/{id}", taxiHandler.Delete) // ?confirm=true
	})
}
