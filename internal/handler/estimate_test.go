package handler_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/handler"
	"github.com/indianhorizon/tripplanner/internal/service"
)

// mockEstimateServicer is a test double for handler.EstimateServicer.
// Set only the method fields your test needs.
type mockEstimateServicer struct {
	start    func(ctx context.Context) (service.Estimate, error)
	get      func(ctx context.Context, id uuid.UUID) (service.Estimate, error)
	apply    func(ctx context.Context, id uuid.UUID, p service.Patch) (service.Estimate, error)
	reset    func(ctx context.Context, id uuid.UUID) (service.Estimate, error)
	finalize func(ctx context.Context, id uuid.UUID) (estimator.TripSummary, error)
	discard  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEstimateServicer) Start(ctx context.Context) (service.Estimate, error) {
	return m.start(ctx)
}
func (m *mockEstimateServicer) Get(ctx context.Context, id uuid.UUID) (service.Estimate, error) {
	return m.get(ctx, id)
}
func (m *mockEstimateServicer) Apply(ctx context.Context, id uuid.UUID, p service.Patch) (service.Estimate, error) {
	return m.apply(ctx, id, p)
}
func (m *mockEstimateServicer) Reset(ctx context.Context, id uuid.UUID) (service.Estimate, error) {
	return m.reset(ctx, id)
}
func (m *mockEstimateServicer) Finalize(ctx context.Context, id uuid.UUID) (estimator.TripSummary, error) {
	return m.finalize(ctx, id)
}
func (m *mockEstimateServicer) Discard(ctx context.Context, id uuid.UUID) error {
	return m.discard(ctx, id)
}

// compile-time check: mockEstimateServicer must satisfy handler.EstimateServicer.
var _ handler.EstimateServicer = (*mockEstimateServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newEstimateHTTPHandler wires a Server with only the estimate service mock.
func newEstimateHTTPHandler(svc handler.EstimateServicer) http.Handler {
	return handler.NewServer(svc, nil, nil, nil).Routes()
}

func day(d int) *time.Time {
	t := time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// goaEstimate is a seven-day Goa trip priced at 30000.
func goaEstimate() service.Estimate {
	return service.Estimate{
		ID: uuid.New(),
		Options: estimator.TripOptions{
			Destination: estimator.Goa,
			Dates:       estimator.DateRange{From: day(1), To: day(7)},
			Hotel:       estimator.HotelOptions{Enabled: true, PricePerNight: 1500, StarRating: 3},
			Flights:     estimator.FlightOptions{Enabled: true, TravelerCount: 2},
			Transport:   estimator.TransportOptions{Enabled: true, Mode: estimator.Cab},
		},
		DurationDays: 7,
		Breakdown:    estimator.Breakdown{Hotel: 10500, Flights: 16000, Transport: 3500, Total: 30000},
		TotalCost:    30000,
		CanFinalize:  true,
		UpdatedAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func goaSummary() estimator.TripSummary {
	e := goaEstimate()
	return estimator.TripSummary{
		Destination:  e.Options.Destination,
		From:         *e.Options.Dates.From,
		To:           *e.Options.Dates.To,
		DurationDays: e.DurationDays,
		Hotel:        e.Options.Hotel,
		Flights:      e.Options.Flights,
		Transport:    e.Options.Transport,
		Breakdown:    e.Breakdown,
		TotalCost:    e.TotalCost,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---- POST /estimates -------------------------------------------------------

func TestStartEstimate_returns201(t *testing.T) {
	est := goaEstimate()
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		start: func(context.Context) (service.Estimate, error) { return est, nil },
	})

	rec := serve(h, http.MethodPost, "/estimates", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got handler.Estimate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, est.ID, got.ID)
	assert.Equal(t, "Goa", got.Destination)
	require.NotNil(t, got.Dates.From)
	assert.Equal(t, "2026-01-01", got.Dates.From.String())
	assert.Equal(t, handler.Money{Amount: 30000, Display: "₹30,000"}, got.Breakdown.Total)
	assert.True(t, got.CanFinalize)
}

func TestStartEstimate_storeErrorReturns500(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		start: func(context.Context) (service.Estimate, error) { return service.Estimate{}, errors.New("redis down") },
	})

	rec := serve(h, http.MethodPost, "/estimates", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "internal_error", detail.Code)
	assert.NotContains(t, detail.Message, "redis", "internal errors are not leaked")
}

// ---- GET /estimates/{id} ---------------------------------------------------

func TestGetEstimate_dateFormat(t *testing.T) {
	est := goaEstimate()
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		get: func(_ context.Context, id uuid.UUID) (service.Estimate, error) {
			assert.Equal(t, est.ID, id)
			return est, nil
		},
	})

	rec := serve(h, http.MethodGet, "/estimates/"+est.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"from":"2026-01-01"`)
	assert.Contains(t, rec.Body.String(), `"to":"2026-01-07"`)
}

func TestGetEstimate_notFound(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		get: func(context.Context, uuid.UUID) (service.Estimate, error) {
			return service.Estimate{}, domain.ErrNotFound
		},
	})

	rec := serve(h, http.MethodGet, "/estimates/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, handler.ErrorDetail{Code: "not_found", Message: "estimate not found"}, decodeError(t, rec))
}

func TestGetEstimate_invalidID(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{})

	rec := serve(h, http.MethodGet, "/estimates/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

// ---- PATCH /estimates/{id} -------------------------------------------------

func TestPatchEstimate_mapsBodyToPatch(t *testing.T) {
	var got service.Patch
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		apply: func(_ context.Context, _ uuid.UUID, p service.Patch) (service.Estimate, error) {
			got = p
			return goaEstimate(), nil
		},
	})
	body := bytes.NewBufferString(`{
		"destination": "Goa",
		"dates": {"from": "2026-01-01", "to": null},
		"hotel": {"enabled": true, "price_per_night": 2000},
		"transport": {"mode": "Train"}
	}`)

	rec := serve(h, http.MethodPatch, "/estimates/"+uuid.NewString(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Destination)
	assert.Equal(t, estimator.Goa, *got.Destination)
	require.NotNil(t, got.Dates)
	require.NotNil(t, got.Dates.From)
	assert.Equal(t, *day(1), *got.Dates.From)
	assert.Nil(t, got.Dates.To)
	require.NotNil(t, got.Hotel)
	assert.Equal(t, true, *got.Hotel.Enabled)
	assert.Equal(t, 2000, *got.Hotel.PricePerNight)
	assert.Nil(t, got.Hotel.StarRating)
	assert.Nil(t, got.Flights)
	require.NotNil(t, got.Transport)
	assert.Nil(t, got.Transport.Enabled)
	assert.Equal(t, estimator.Train, *got.Transport.Mode)
}

func TestPatchEstimate_malformedJSON(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{})

	rec := serve(h, http.MethodPatch, "/estimates/"+uuid.NewString(), bytes.NewBufferString(`{"destination":`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

func TestPatchEstimate_badDate(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{})

	rec := serve(h, http.MethodPatch, "/estimates/"+uuid.NewString(),
		bytes.NewBufferString(`{"dates":{"from":"01/02/2026","to":null}}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchEstimate_unknownField(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{})

	rec := serve(h, http.MethodPatch, "/estimates/"+uuid.NewString(), bytes.NewBufferString(`{"budget": 5}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchEstimate_validationMessage(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		apply: func(context.Context, uuid.UUID, service.Patch) (service.Estimate, error) {
			return service.Estimate{}, wrapValidation("unknown destination \"Atlantis\"")
		},
	})

	rec := serve(h, http.MethodPatch, "/estimates/"+uuid.NewString(), jsonBody(t, map[string]string{"destination": "Atlantis"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `unknown destination "Atlantis"`, decodeError(t, rec).Message)
}

// ---- POST /estimates/{id}/reset --------------------------------------------

func TestResetEstimate(t *testing.T) {
	called := false
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		reset: func(context.Context, uuid.UUID) (service.Estimate, error) {
			called = true
			return service.Estimate{ID: uuid.New(), Options: estimator.DefaultOptions(*day(10)), DurationDays: 8}, nil
		},
	})

	rec := serve(h, http.MethodPost, "/estimates/"+uuid.NewString()+"/reset", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	var got handler.Estimate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "", got.Destination)
	assert.Equal(t, 8, got.DurationDays)
	assert.False(t, got.Hotel.Enabled)
	assert.Equal(t, 1500, got.Hotel.PricePerNight)
}

// ---- POST /estimates/{id}/finalize -----------------------------------------

func TestFinalizeEstimate_returnsSummary(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		finalize: func(context.Context, uuid.UUID) (estimator.TripSummary, error) { return goaSummary(), nil },
	})

	rec := serve(h, http.MethodPost, "/estimates/"+uuid.NewString()+"/finalize", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got handler.TripSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Goa", got.Destination)
	assert.Equal(t, "2026-01-07", got.To.String())
	assert.Equal(t, 7, got.DurationDays)
	assert.Equal(t, estimator.Services{Flights: true, Hotels: true, Cabs: true}, got.Services)
	assert.Equal(t, "₹30,000", got.TotalCost.Display)
}

func TestFinalizeEstimate_preconditionReturns409(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		finalize: func(context.Context, uuid.UUID) (estimator.TripSummary, error) {
			return estimator.TripSummary{}, wrapService(&estimator.PreconditionError{
				Reasons: []string{"destination is not selected", "estimated cost is zero"},
			})
		},
	})

	rec := serve(h, http.MethodPost, "/estimates/"+uuid.NewString()+"/finalize", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "precondition_failed", detail.Code)
	assert.Equal(t, []string{"destination is not selected", "estimated cost is zero"}, detail.Details)
}

// ---- DELETE /estimates/{id} ------------------------------------------------

func TestDiscardEstimate(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		discard: func(context.Context, uuid.UUID) error { return nil },
	})

	rec := serve(h, http.MethodDelete, "/estimates/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDiscardEstimate_notFound(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		discard: func(context.Context, uuid.UUID) error { return wrapService(domain.ErrNotFound) },
	})

	rec := serve(h, http.MethodDelete, "/estimates/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /estimates/{id}/quote ---------------------------------------------

func TestGetQuote_JSON(t *testing.T) {
	est := goaEstimate()
	est.Options.Transport.Enabled = false
	est.Breakdown = estimator.Breakdown{Hotel: 10500, Flights: 16000, Total: 26500}
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		get: func(context.Context, uuid.UUID) (service.Estimate, error) { return est, nil },
	})

	rec := serve(h, http.MethodGet, "/estimates/"+est.ID.String()+"/quote", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var q handler.Quote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&q))
	require.Len(t, q.Lines, 2, "disabled sections are not quoted")
	assert.Equal(t, "Hotel", q.Lines[0].Item)
	assert.Equal(t, "3-star, 1500/night x 7 nights", q.Lines[0].Detail)
	assert.Equal(t, "Flights", q.Lines[1].Item)
	assert.Equal(t, "8000/person x 2 travelers", q.Lines[1].Detail)
	assert.Equal(t, handler.Money{Amount: 26500, Display: "₹26,500"}, q.Total)
}

func TestGetQuote_CSV(t *testing.T) {
	est := goaEstimate()
	h := newEstimateHTTPHandler(&mockEstimateServicer{
		get: func(context.Context, uuid.UUID) (service.Estimate, error) { return est, nil },
	})

	rec := serve(h, http.MethodGet, "/estimates/"+est.ID.String()+"/quote?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), est.ID.String())

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header, three lines and a total")
	assert.Equal(t, []string{"item", "detail", "amount"}, records[0])
	assert.Equal(t, []string{"Local transport", "Cab, 500/day x 7 days", "3500"}, records[3])
	assert.Equal(t, []string{"Total", "Goa", "30000"}, records[4])
}

func TestGetQuote_badFormat(t *testing.T) {
	h := newEstimateHTTPHandler(&mockEstimateServicer{})

	rec := serve(h, http.MethodGet, "/estimates/"+uuid.NewString()+"/quote?format=xml", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
