package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/events"
	"taxi-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Taxi         *TaxiHandler
	Availability *AvailabilityHandler
	Ride         *RideHandler
	Booking      *BookingHandler
	Live         *LiveHandler
}

func NewHandler(service *usecase.Service, hub *events.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Taxi:         NewTaxiHandler(service.Taxi, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Ride:         NewRideHandler(service.Ride, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Live:         NewLiveHandler(hub, log),
	}
}

// handleServiceError maps service errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case usecase.IsAuthError(err):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrRouteNotFound):
		log.Warn(operation+" failed - routing", zap.Error(err))
		utils.ResponseBadGateway(w, "route lookup failed")

	case errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrConfirmationRequired),
		errors.Is(err, usecase.ErrTaxiUnavailable),
		errors.Is(err, usecase.ErrAlreadySubmitted),
		errors.Is(err, entity.ErrEmailTaken):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (*entity.Identity, bool) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	return identity, true
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	if i := strings.Index(ip, ","); i >= 0 {
		ip = ip[:i]
	}
	return usecase.ClientInfo{UserAgent: r.UserAgent(), IPAddress: strings.TrimSpace(ip)}
}
