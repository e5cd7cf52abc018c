// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (health.go, estimate.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/service"
)

// EstimateServicer defines the estimator session operations the handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without a session store.
type EstimateServicer interface {
	Start(ctx context.Context) (service.Estimate, error)
	Get(ctx context.Context, id uuid.UUID) (service.Estimate, error)
	Apply(ctx context.Context, id uuid.UUID, p service.Patch) (service.Estimate, error)
	Reset(ctx context.Context, id uuid.UUID) (service.Estimate, error)
	Finalize(ctx context.Context, id uuid.UUID) (estimator.TripSummary, error)
	Discard(ctx context.Context, id uuid.UUID) error
}

// CatalogServicer defines the package catalog operations.
type CatalogServicer interface {
	List(ctx context.Context, f domain.PackageFilter, p domain.PaginationParams) ([]domain.TravelPackage, int64, error)
	GetBySlug(ctx context.Context, slug string) (domain.PackageDetail, error)
}

// BookingServicer defines the booking operations.
type BookingServicer interface {
	Submit(ctx context.Context, estimateID uuid.UUID, req domain.BookingRequest) (domain.BookingConfirmation, error)
}

// Server serves every API endpoint.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	estimates EstimateServicer
	catalog   CatalogServicer
	bookings  BookingServicer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil logger
// falls back to slog.Default().
func NewServer(estimates EstimateServicer, catalog CatalogServicer, bookings BookingServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{estimates: estimates, catalog: catalog, bookings: bookings, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the API router. Cross-cutting middleware is applied by
// the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/estimator/rates", s.GetRates)

	r.Route("/estimates", func(r chi.Router) {
		r.Post("/", s.StartEstimate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetEstimate)
			r.Patch("/", s.PatchEstimate)
			r.Delete("/", s.DiscardEstimate)
			r.Post("/reset", s.ResetEstimate)
			r.Post("/finalize", s.FinalizeEstimate)
			r.Get("/quote", s.GetQuote)
		})
	})

	r.Get("/packages", s.ListPackages)
	r.Get("/packages/{slug}", s.GetPackage)

	r.Post("/bookings", s.SubmitBooking)

	return r
}
