package http

import (
	"log/slog"
	"net/http"

	"carpool-backend/internal/security"
	"carpool-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	identitySvc    service.IdentityService
	rideSvc        service.RideService
	reservationSvc service.ReservationService
	reputationSvc  service.ReputationService
	querySvc       service.QueryService
	noteSvc        service.NotificationService
	tokens         security.TokenManager
	logger         *slog.Logger
	router         *mux.Router
}

func NewServer(
	identitySvc service.IdentityService,
	rideSvc service.RideService,
	reservationSvc service.ReservationService,
	reputationSvc service.ReputationService,
	querySvc service.QueryService,
	noteSvc service.NotificationService,
	tokens security.TokenManager,
	logger *slog.Logger,
) *Server {
	s := &Server{
		identitySvc:    identitySvc,
		rideSvc:        rideSvc,
		reservationSvc: reservationSvc,
		reputationSvc:  reputationSvc,
		querySvc:       querySvc,
		noteSvc:        noteSvc,
		tokens:         tokens,
		logger:         logger,
		router:         mux.NewRouter(),
	}
	s.registerMiddleware()
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/rides", s.handleSearchRides).Methods(http.MethodGet)
	api.HandleFunc("/rides/{id:[0-9]+}", s.handleGetRide).Methods(http.MethodGet)
	api.HandleFunc("/members/{id:[0-9]+}/summary", s.handleMemberSummary).Methods(http.MethodGet)
	api.HandleFunc("/members/{id:[0-9]+}/ratings", s.handleRatingsReceived).Methods(http.MethodGet)

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(s.authMiddleware)
	auth.HandleFunc("/me", s.handleGetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/me", s.handleUpdateProfile).Methods(http.MethodPut)
	auth.HandleFunc("/me/rides", s.handleMyRides).Methods(http.MethodGet)
	auth.HandleFunc("/me/requests", s.handleMyRequests).Methods(http.MethodGet)
	auth.HandleFunc("/me/notifications", s.handleNotifications).Methods(http.MethodGet)
	auth.HandleFunc("/me/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)
	auth.HandleFunc("/rides", s.handlePublishRide).Methods(http.MethodPost)
	auth.HandleFunc("/rides/{id:[0-9]+}", s.handleUpdateRide).Methods(http.MethodPut)
	auth.HandleFunc("/rides/{id:[0-9]+}", s.handleCancelRide).Methods(http.MethodDelete)
	auth.HandleFunc("/rides/{id:[0-9]+}/capacity", s.handleRemainingCapacity).Methods(http.MethodGet)
	auth.HandleFunc("/rides/{id:[0-9]+}/contact", s.handleRideContact).Methods(http.MethodGet)
	auth.HandleFunc("/rides/{id:[0-9]+}/requests", s.handleRequestSeat).Methods(http.MethodPost)
	auth.HandleFunc("/rides/{id:[0-9]+}/requests", s.handleRequestsForRide).Methods(http.MethodGet)
	auth.HandleFunc("/requests/{id:[0-9]+}/accept", s.handleAcceptRequest).Methods(http.MethodPost)
	auth.HandleFunc("/requests/{id:[0-9]+}/decline", s.handleDeclineRequest).Methods(http.MethodPost)
	auth.HandleFunc("/members/{id:[0-9]+}/ratings", s.handleRateMember).Methods(http.MethodPost)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
