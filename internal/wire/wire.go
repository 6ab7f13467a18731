package wire

import (
	"net/http"

	"taxi-booking/internal/adaptor"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/events"
	"taxi-booking/pkg/middleware"
	"taxi-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Deps are the process-wide collaborators built in main.
type Deps struct {
	Repo      *repository.Repository
	Routes    usecase.RouteFinder
	Publisher events.Publisher
	Hub       *events.Hub
}

func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Routes, deps.Publisher, config, logger)
	handler := adaptor.NewHandler(service, deps.Hub, logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	auth := middleware.AuthSession(service.Auth, logger)
	admin := middleware.Admin(logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, handler.Ride, auth, admin)
	wireTaxi(r, handler.Taxi, auth, admin)
	wireAvailability(r, handler.Availability, auth, admin)
	wireBooking(r, handler.Booking, auth)
	wireRide(r, handler.Ride, handler.Live, auth, admin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/api/info", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Service info", map[string]any{
			"name":          config.App.Name,
			"ride_statuses": []string{"pending", "accepted", "en_route", "finished", "cancelled"},
		})
	})

	return r
}
