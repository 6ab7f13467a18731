package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, auth func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/routes/lookup", bookingHandler.LookupRoute)

	r.With(auth).Route("/api/booking", func(r chi.Router) {
		r.Get("/draft", bookingHandler.GetDraft)
		r.Delete("/draft", bookingHandler.Reset)
		r.Post("/draft/points", bookingHandler.SelectPoint)
		r.Put("/draft/taxi", bookingHandler.SelectTaxi)
		r.Put("/draft/date", bookingHandler.SelectDate)
		r.Put("/draft/time", bookingHandler.SelectTime)
		r.Post("/confirm", bookingHandler.Confirm)
	})
}
