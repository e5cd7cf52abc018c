package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/service"
	"github.com/indianhorizon/tripplanner/internal/session"
)

// mockStore is a hand-written test double for session.Store.
// Each method is a function field; set only the ones the test needs.
type mockStore struct {
	create func(ctx context.Context, s session.Session) error
	get    func(ctx context.Context, id uuid.UUID) (session.Session, error)
	update func(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) (session.Session, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStore) Create(ctx context.Context, s session.Session) error { return m.create(ctx, s) }
func (m *mockStore) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	return m.get(ctx, id)
}
func (m *mockStore) Update(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) (session.Session, error) {
	return m.update(ctx, id, fn)
}
func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

// compile-time check: mockStore must satisfy session.Store.
var _ session.Store = (*mockStore)(nil)

// ---- helpers ---------------------------------------------------------------

var today = time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEstimateService() *service.EstimateService {
	return service.NewEstimateService(session.NewMemoryStore(time.Hour), discardLogger(), fixedClock)
}

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// goaPatch describes a seven-day Goa trip: hotel 1500 x 7, two travelers by
// air, cab transport.
func goaPatch() service.Patch {
	return service.Patch{
		Destination: ptr(estimator.Goa),
		Dates:       &estimator.DateRange{From: date(2026, 1, 1), To: date(2026, 1, 7)},
		Hotel:       &service.HotelPatch{Enabled: ptr(true), PricePerNight: ptr(1500)},
		Flights:     &service.FlightsPatch{Enabled: ptr(true), TravelerCount: ptr(2)},
		Transport:   &service.TransportPatch{Enabled: ptr(true), Mode: ptr(estimator.Cab)},
	}
}

// ---- Start / Get -----------------------------------------------------------

func TestEstimateService_Start(t *testing.T) {
	svc := newEstimateService()

	got, err := svc.Start(context.Background())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 8, got.DurationDays, "default range is today plus seven days, inclusive")
	assert.Zero(t, got.TotalCost)
	assert.False(t, got.CanFinalize)
	require.NotNil(t, got.Options.Dates.From)
	assert.Equal(t, *date(2026, 1, 10), *got.Options.Dates.From)
}

func TestEstimateService_Start_StoreError(t *testing.T) {
	boom := errors.New("redis down")
	svc := service.NewEstimateService(&mockStore{
		create: func(context.Context, session.Session) error { return boom },
	}, discardLogger(), fixedClock)

	_, err := svc.Start(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestEstimateService_Get_NotFound(t *testing.T) {
	svc := newEstimateService()

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Apply -----------------------------------------------------------------

func TestEstimateService_Apply_GoaScenario(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	got, err := svc.Apply(ctx, est.ID, goaPatch())

	require.NoError(t, err)
	assert.Equal(t, 7, got.DurationDays)
	assert.Equal(t, estimator.Breakdown{Hotel: 10500, Flights: 16000, Transport: 3500, Total: 30000}, got.Breakdown)
	assert.Equal(t, 30000, got.TotalCost)
	assert.True(t, got.CanFinalize)

	reloaded, err := svc.Get(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, 30000, reloaded.TotalCost, "changes are stored in the session")
}

func TestEstimateService_Apply_PartialPatchKeepsOtherFields(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, est.ID, goaPatch())
	require.NoError(t, err)

	got, err := svc.Apply(ctx, est.ID, service.Patch{Hotel: &service.HotelPatch{Enabled: ptr(false)}})

	require.NoError(t, err)
	assert.Equal(t, 19500, got.TotalCost)
	assert.Equal(t, 1500, got.Options.Hotel.PricePerNight, "disabled section keeps its price")
	assert.Equal(t, estimator.Goa, got.Options.Destination)
}

func TestEstimateService_Apply_ClampsOutOfRangeValues(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	got, err := svc.Apply(ctx, est.ID, service.Patch{
		Hotel:   &service.HotelPatch{PricePerNight: ptr(50000), StarRating: ptr(9)},
		Flights: &service.FlightsPatch{TravelerCount: ptr(0)},
	})

	require.NoError(t, err)
	assert.Equal(t, estimator.MaxHotelPrice, got.Options.Hotel.PricePerNight)
	assert.Equal(t, estimator.MaxStarRating, got.Options.Hotel.StarRating)
	assert.Equal(t, estimator.MinTravelers, got.Options.Flights.TravelerCount)
}

func TestEstimateService_Apply_ClearDates(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, est.ID, goaPatch())
	require.NoError(t, err)

	got, err := svc.Apply(ctx, est.ID, service.Patch{Dates: &estimator.DateRange{}})

	require.NoError(t, err)
	assert.Zero(t, got.DurationDays)
	assert.Equal(t, 16000, got.TotalCost, "flights do not depend on the dates")
	assert.False(t, got.CanFinalize)
}

func TestEstimateService_Apply_UnknownDestination(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, est.ID, service.Patch{Destination: ptr(estimator.Destination("Atlantis"))})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEstimateService_Apply_UnknownTransportMode(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, est.ID, service.Patch{
		Destination: ptr(estimator.Kerala),
		Transport:   &service.TransportPatch{Mode: ptr(estimator.TransportMode("Rocket"))},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.Get(ctx, est.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Options.Destination, "a rejected patch changes nothing")
}

func TestEstimateService_Apply_EmptyDestinationClears(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, est.ID, goaPatch())
	require.NoError(t, err)

	got, err := svc.Apply(ctx, est.ID, service.Patch{Destination: ptr(estimator.Destination(""))})

	require.NoError(t, err)
	assert.Empty(t, got.Options.Destination)
	assert.False(t, got.CanFinalize)
}

func TestEstimateService_Apply_NotFound(t *testing.T) {
	svc := newEstimateService()

	_, err := svc.Apply(context.Background(), uuid.New(), goaPatch())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Reset -----------------------------------------------------------------

func TestEstimateService_Reset(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, est.ID, goaPatch())
	require.NoError(t, err)

	got, err := svc.Reset(ctx, est.ID)

	require.NoError(t, err)
	assert.Equal(t, est.Options, got.Options)
	assert.Zero(t, got.TotalCost)
}

// ---- Finalize --------------------------------------------------------------

func TestEstimateService_Finalize(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, est.ID, goaPatch())
	require.NoError(t, err)

	summary, err := svc.Finalize(ctx, est.ID)

	require.NoError(t, err)
	assert.Equal(t, estimator.Goa, summary.Destination)
	assert.Equal(t, 7, summary.DurationDays)
	assert.Equal(t, 30000, summary.TotalCost)
	assert.Equal(t, estimator.Services{Flights: true, Hotels: true, Cabs: true}, summary.Services())

	_, err = svc.Get(ctx, est.ID)
	assert.NoError(t, err, "finalize leaves the session open")
}

func TestEstimateService_Finalize_Precondition(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, est.ID)

	assert.ErrorIs(t, err, estimator.ErrPrecondition)
	var perr *estimator.PreconditionError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reasons, "destination is not selected")
	assert.Contains(t, perr.Reasons, "estimated cost is zero")
}

// ---- Discard ---------------------------------------------------------------

func TestEstimateService_Discard(t *testing.T) {
	svc := newEstimateService()
	ctx := context.Background()
	est, err := svc.Start(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, est.ID))

	_, err = svc.Get(ctx, est.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Discard(ctx, est.ID), domain.ErrNotFound)
}
