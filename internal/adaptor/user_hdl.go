package adaptor

import (
	"net/http"

	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), identity)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// ListProfiles handles GET /api/admin/profiles?page=1&per_page=10
func (h *UserHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	profiles, err := h.service.ListProfiles(r.Context(), page)
	if err != nil {
		handleServiceError(w, h.log, err, "list profiles")
		return
	}

	utils.ResponseSuccess(w, "Profiles retrieved successfully", profiles)
}
