package routes

import (
	"net/http"

	"github.com/healthpal-app/backend/internal/api/handlers"
	"github.com/healthpal-app/backend/internal/api/middleware"
	"github.com/healthpal-app/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityLocatorHandler *handlers.FacilityLocatorHandler
	geolocationHandler     *handlers.GeolocationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facilityLocatorHandler *handlers.FacilityLocatorHandler,
	geolocationHandler *handlers.GeolocationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                    http.NewServeMux(),
		facilityLocatorHandler: facilityLocatorHandler,
		geolocationHandler:     geolocationHandler,
		metrics:                metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Facility endpoints
	r.mux.HandleFunc("GET /api/facilities/nearby", r.facilityLocatorHandler.FindNearby)

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
