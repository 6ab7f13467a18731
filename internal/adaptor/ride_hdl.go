package adaptor

import (
	"net/http"

	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type RideHandler struct {
	service usecase.RideService
	log     *zap.Logger
}

func NewRideHandler(service usecase.RideService, log *zap.Logger) *RideHandler {
	return &RideHandler{
		service: service,
		log:     log.With(zap.String("handler", "ride")),
	}
}

// List handles GET /api/admin/rides?status=pending&date=week
func (h *RideHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &request.RideFilterRequest{
		Status: query.Get("status"),
		Date:   query.Get("date"),
	}

	rides, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list rides")
		return
	}
	utils.ResponseSuccess(w, "Rides retrieved successfully", rides)
}

// Get handles GET /api/admin/rides/{id}
func (h *RideHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	ride, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get ride")
		return
	}
	utils.ResponseSuccess(w, "Ride retrieved successfully", ride)
}

// UpdateStatus handles PUT /api/admin/rides/{id}/status
func (h *RideHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateRideStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ride, err := h.service.Advance(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ride status")
		return
	}
	utils.ResponseSuccess(w, "Ride status updated", ride)
}

// UserRides handles GET /api/user/rides?page=1&per_page=10
func (h *RideHandler) UserRides(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	rides, err := h.service.UserRides(r.Context(), identity, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list user rides")
		return
	}
	utils.ResponseSuccess(w, "Rides retrieved successfully", rides)
}
