package adaptor

import (
	"net/http"

	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetDraft handles GET /api/booking/draft
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	draft, err := h.service.GetDraft(r.Context(), identity)
	if err != nil {
		handleServiceError(w, h.log, err, "get draft")
		return
	}
	utils.ResponseSuccess(w, "Draft retrieved successfully", draft)
}

// SelectPoint handles POST /api/booking/draft/points
func (h *BookingHandler) SelectPoint(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req request.PointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.service.SelectPoint(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select point")
		return
	}
	utils.ResponseSuccess(w, "Point selected", draft)
}

// SelectTaxi handles PUT /api/booking/draft/taxi
func (h *BookingHandler) SelectTaxi(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req request.SelectTaxiRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.service.SelectTaxi(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select taxi")
		return
	}
	utils.ResponseSuccess(w, "Taxi selected", draft)
}

// SelectDate handles PUT /api/booking/draft/date
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req request.SelectDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.service.SelectDate(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select date")
		return
	}
	utils.ResponseSuccess(w, "Date selected", draft)
}

// SelectTime handles PUT /api/booking/draft/time
func (h *BookingHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req request.SelectTimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.service.SelectTime(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select time")
		return
	}
	utils.ResponseSuccess(w, "Time selected", draft)
}

// Reset handles DELETE /api/booking/draft
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	draft, err := h.service.Reset(r.Context(), identity)
	if err != nil {
		handleServiceError(w, h.log, err, "reset draft")
		return
	}
	utils.ResponseSuccess(w, "Draft reset", draft)
}

// Confirm handles POST /api/booking/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	ride, err := h.service.Confirm(r.Context(), identity)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}
	utils.ResponseCreated(w, "Ride booked successfully", ride)
}

// LookupRoute handles POST /api/routes/lookup
func (h *BookingHandler) LookupRoute(w http.ResponseWriter, r *http.Request) {
	var req request.RouteLookupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := h.service.LookupRoute(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "lookup route")
		return
	}
	utils.ResponseSuccess(w, "Route found", route)
}
