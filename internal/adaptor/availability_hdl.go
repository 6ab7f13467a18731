package adaptor

import (
	"net/http"

	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// Dates handles GET /api/availabilities/dates
func (h *AvailabilityHandler) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.OfferedDates(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list offered dates")
		return
	}
	utils.ResponseSuccess(w, "Dates retrieved successfully", dates)
}

// Times handles GET /api/availabilities/times?date=2024-06-01
func (h *AvailabilityHandler) Times(w http.ResponseWriter, r *http.Request) {
	times, err := h.service.OfferedTimes(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "list offered times")
		return
	}
	utils.ResponseSuccess(w, "Times retrieved successfully", times)
}

// List handles GET /api/admin/availabilities
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list availabilities")
		return
	}
	utils.ResponseSuccess(w, "Availabilities retrieved successfully", slots)
}

// Get handles GET /api/admin/availabilities/{id}
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	slot, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}
	utils.ResponseSuccess(w, "Availability retrieved successfully", slot)
}

// Create handles POST /api/admin/availabilities
func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create availability")
		return
	}
	utils.ResponseCreated(w, "Availability created successfully", slot)
}

// Toggle handles PUT /api/admin/availabilities/{id}/toggle
func (h *AvailabilityHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	slot, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle availability")
		return
	}
	utils.ResponseSuccess(w, "Availability updated successfully", slot)
}

// Delete handles DELETE /api/admin/availabilities/{id}?confirm=true
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	confirmed := utils.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.service.Delete(r.Context(), id, confirmed); err != nil {
		handleServiceError(w, h.log, err, "delete availability")
		return
	}
	utils.ResponseSuccess(w, "Availability deleted successfully", nil)
}
