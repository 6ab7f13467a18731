package adaptor

import (
	"net/http"
	"strconv"

	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type TaxiHandler struct {
	service usecase.TaxiService
	log     *zap.Logger
}

func NewTaxiHandler(service usecase.TaxiService, log *zap.Logger) *TaxiHandler {
	return &TaxiHandler{
		service: service,
		log:     log.With(zap.String("handler", "taxi")),
	}
}

// ListAvailable handles GET /api/taxis
func (h *TaxiHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	taxis, err := h.service.ListAvailable(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list available taxis")
		return
	}
	utils.ResponseSuccess(w, "Taxis retrieved successfully", taxis)
}

// Quote handles GET /api/taxis/{id}/quote?distance_km=12.5
func (h *TaxiHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	distance, err := strconv.ParseFloat(r.URL.Query().Get("distance_km"), 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"distance_km": "Must be a number"})
		return
	}

	quote, err := h.service.Quote(r.Context(), id, distance)
	if err != nil {
		handleServiceError(w, h.log, err, "quote taxi")
		return
	}
	utils.ResponseSuccess(w, "Quote calculated", quote)
}

// ListAll handles GET /api/admin/taxis
func (h *TaxiHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	taxis, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list taxis")
		return
	}
	utils.ResponseSuccess(w, "Taxis retrieved successfully", taxis)
}

// Get handles GET /api/admin/taxis/{id}
func (h *TaxiHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	taxi, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get taxi")
		return
	}
	utils.ResponseSuccess(w, "Taxi retrieved successfully", taxi)
}

// Create handles POST /api/admin/taxis
func (h *TaxiHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaxiRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	taxi, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create taxi")
		return
	}
	utils.ResponseCreated(w, "Taxi created successfully", taxi)
}

// Update handles PUT /api/admin/taxis/{id}
func (h *TaxiHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateTaxiRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	taxi, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update taxi")
		return
	}
	utils.ResponseSuccess(w, "Taxi updated successfully", taxi)
}

// Delete handles DELETE /api/admin/taxis/{id}?confirm=true
func (h *TaxiHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	confirmed := utils.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.service.Delete(r.Context(), id, confirmed); err != nil {
		handleServiceError(w, h.log, err, "delete taxi")
		return
	}
	utils.ResponseSuccess(w, "Taxi deleted successfully", nil)
}
