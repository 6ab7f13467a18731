package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	rideHandler *adaptor.RideHandler,
	auth, admin func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(auth).Route("/api/user", func(r chi.Router) {
		r.Get("/profile", userHandler.GetProfile)
		r.Get("/rides", rideHandler.UserRides) // ?page=1&per_page=10
	})

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Get("/api/admin/profiles", userHandler.ListProfiles)
}
