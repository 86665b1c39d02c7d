package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"surfboard-marketplace-backend/internal/metrics"
	"surfboard-marketplace-backend/internal/security"
	"surfboard-marketplace-backend/internal/service"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Auth           service.AuthService
	Surfboards     service.SurfboardService
	Rentals        service.RentalService
	Storage        service.StorageService
	Partners       service.PartnerService
	Tokens         security.TokenManager
	DB             Pinger
	AuthLimiter    *RateLimiter
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter builds the mux router with every route and middleware wired.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.SecureCookies)
	surfboardHandler := NewSurfboardHandler(deps.Surfboards, deps.Rentals, deps.Storage)
	rentalHandler := NewRentalHandler(deps.Rentals)
	partnerHandler := NewPartnerHandler(deps.Partners, deps.Storage)
	healthHandler := NewHealthHandler(deps.DB)

	router := mux.NewRouter()
	router.Use(RequestLogger, metrics.Middleware, NewAuthMiddleware(deps.Tokens).Handler)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)

	auth := router.PathPrefix("/auth").Subrouter()
	if deps.AuthLimiter != nil {
		auth.Use(deps.AuthLimiter.Handler)
	}
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/signup", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// my-boards before {id} so it is not parsed as an id
	router.HandleFunc("/surfboards", surfboardHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/surfboards", surfboardHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/surfboards/my-boards", surfboardHandler.ListMine).Methods(http.MethodGet)
	router.HandleFunc("/surfboards/{id}", surfboardHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/surfboards/{id}", surfboardHandler.Update).Methods(http.MethodPut)
	router.HandleFunc("/surfboards/{id}", surfboardHandler.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/surfboards/{id}/rent", surfboardHandler.Rent).Methods(http.MethodPost)
	router.HandleFunc("/surfboards/{id}/store", surfboardHandler.Store).Methods(http.MethodPost)
	router.HandleFunc("/surfboards/{id}/store", surfboardHandler.Release).Methods(http.MethodDelete)

	router.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/rentals/{id}/status", rentalHandler.UpdateStatus).Methods(http.MethodPut)

	router.HandleFunc("/partners", partnerHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/partners/register", partnerHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/partners/storage-requests", partnerHandler.StorageRequests).Methods(http.MethodGet)
	router.HandleFunc("/partners/storage-requests/{requestId}", partnerHandler.DecideStorageRequest).Methods(http.MethodPut)
	router.HandleFunc("/partners/{id}", partnerHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/partners/{id}", partnerHandler.Update).Methods(http.MethodPut)
	router.HandleFunc("/partners/{id}/verify", partnerHandler.Verify).Methods(http.MethodPut)
	router.HandleFunc("/partners/{id}/stored-surfboards", partnerHandler.StoredSurfboards).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return NewCORSMiddleware(deps.AllowedOrigins).Handler(router)
}
