// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate the
// estimator engine, the session store and the repos.
// No SQL lives here; services depend on interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/session"
)

// Estimate is the state of one estimator session as seen by API clients.
type Estimate struct {
	ID           uuid.UUID
	Options      estimator.TripOptions
	DurationDays int
	Breakdown    estimator.Breakdown
	TotalCost    int
	CanFinalize  bool
	UpdatedAt    time.Time
}

// Patch is a partial update of an estimate. Nil fields are left unchanged.
type Patch struct {
	Destination *estimator.Destination
	// Dates replaces both ends of the range; either end may be nil.
	Dates     *estimator.DateRange
	Hotel     *HotelPatch
	Flights   *FlightsPatch
	Transport *TransportPatch
}

type HotelPatch struct {
	Enabled       *bool
	PricePerNight *int
	StarRating    *int
}

type FlightsPatch struct {
	Enabled       *bool
	TravelerCount *int
}

type TransportPatch struct {
	Enabled *bool
	Mode    *estimator.TransportMode
}

// EstimateService runs estimator sessions. Session state lives in the
// store; every call rehydrates an Estimator, applies the change and writes
// the options back.
type EstimateService struct {
	store  session.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewEstimateService constructs an EstimateService. now may be nil, in
// which case time.Now is used.
func NewEstimateService(store session.Store, logger *slog.Logger, now func() time.Time) *EstimateService {
	if now == nil {
		now = time.Now
	}
	return &EstimateService{store: store, logger: logger, now: now}
}

// Start opens a session initialised with the default options for today.
func (s *EstimateService) Start(ctx context.Context) (Estimate, error) {
	e := estimator.New(estimator.WithClock(s.now))
	now := s.now()
	sess := session.Session{
		ID:        uuid.New(),
		Options:   e.Options(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return Estimate{}, fmt.Errorf("service.EstimateService.Start: %w", err)
	}
	s.logger.DebugContext(ctx, "estimate started", "estimate_id", sess.ID)
	return view(sess, e), nil
}

// Get returns the current state of a session.
// Returns domain.ErrNotFound for unknown or expired sessions.
func (s *EstimateService) Get(ctx context.Context, id uuid.UUID) (Estimate, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Estimate{}, fmt.Errorf("service.EstimateService.Get: %w", err)
	}
	return view(sess, s.restore(sess)), nil
}

// Apply validates p and applies it to the session in a fixed order:
// destination, dates, hotel, flights, transport.
// Returns domain.ErrValidation for an unknown destination or transport mode.
func (s *EstimateService) Apply(ctx context.Context, id uuid.UUID, p Patch) (Estimate, error) {
	if err := validatePatch(p); err != nil {
		return Estimate{}, err
	}
	return s.mutate(ctx, "service.EstimateService.Apply", id, func(e *estimator.Estimator) {
		applyPatch(e, p)
	})
}

// Reset restores the default options of the session.
func (s *EstimateService) Reset(ctx context.Context, id uuid.UUID) (Estimate, error) {
	return s.mutate(ctx, "service.EstimateService.Reset", id, (*estimator.Estimator).Reset)
}

// Finalize returns the trip summary of the session. The session stays
// open. Returns an error matching estimator.ErrPrecondition when the trip
// cannot be booked yet.
func (s *EstimateService) Finalize(ctx context.Context, id uuid.UUID) (estimator.TripSummary, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return estimator.TripSummary{}, fmt.Errorf("service.EstimateService.Finalize: %w", err)
	}
	summary, err := s.restore(sess).Finalize()
	if err != nil {
		return estimator.TripSummary{}, fmt.Errorf("service.EstimateService.Finalize: %w", err)
	}
	s.logger.InfoContext(ctx, "estimate finalized",
		"estimate_id", id,
		"destination", summary.Destination,
		"duration_days", summary.DurationDays,
		"total_cost", summary.TotalCost,
	)
	return summary, nil
}

// Discard deletes the session.
func (s *EstimateService) Discard(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EstimateService.Discard: %w", err)
	}
	return nil
}

func (s *EstimateService) mutate(ctx context.Context, op string, id uuid.UUID, change func(*estimator.Estimator)) (Estimate, error) {
	var e *estimator.Estimator
	sess, err := s.store.Update(ctx, id, func(sess *session.Session) error {
		e = s.restore(*sess)
		change(e)
		sess.Options = e.Options()
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("%s: %w", op, err)
	}
	s.logger.DebugContext(ctx, "estimate updated", "estimate_id", id, "total_cost", e.TotalCost())
	return view(sess, e), nil
}

func (s *EstimateService) restore(sess session.Session) *estimator.Estimator {
	return estimator.Restore(sess.Options, estimator.WithClock(s.now))
}

func view(sess session.Session, e *estimator.Estimator) Estimate {
	return Estimate{
		ID:           sess.ID,
		Options:      e.Options(),
		DurationDays: e.DurationDays(),
		Breakdown:    e.Breakdown(),
		TotalCost:    e.TotalCost(),
		CanFinalize:  e.CanFinalize(),
		UpdatedAt:    sess.UpdatedAt,
	}
}

// validatePatch rejects values the engine would silently accept or ignore.
// An empty destination clears the selection.
func validatePatch(p Patch) error {
	if p.Destination != nil && *p.Destination != "" && !p.Destination.Known() {
		return fmt.Errorf("%w: unknown destination %q", domain.ErrValidation, *p.Destination)
	}
	if p.Transport != nil && p.Transport.Mode != nil && !p.Transport.Mode.Known() {
		return fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, *p.Transport.Mode)
	}
	return nil
}

func applyPatch(e *estimator.Estimator, p Patch) {
	if p.Destination != nil {
		e.SetDestination(*p.Destination)
	}
	if p.Dates != nil {
		e.SetDateRange(p.Dates.From, p.Dates.To)
	}
	if h := p.Hotel; h != nil {
		if h.Enabled != nil {
			e.ToggleHotel(*h.Enabled)
		}
		if h.PricePerNight != nil {
			e.SetHotelPrice(*h.PricePerNight)
		}
		if h.StarRating != nil {
			e.SetHotelStars(*h.StarRating)
		}
	}
	if f := p.Flights; f != nil {
		if f.Enabled != nil {
			e.ToggleFlights(*f.Enabled)
		}
		if f.TravelerCount != nil {
			e.SetTravelerCount(*f.TravelerCount)
		}
	}
	if t := p.Transport; t != nil {
		if t.Enabled != nil {
			e.ToggleTransport(*t.Enabled)
		}
		if t.Mode != nil {
			e.SetTransportMode(*t.Mode)
		}
	}
}
