package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/pkg/currency"
)

// Money is a whole-rupee amount together with its en-IN display form.
type Money struct {
	Amount  int    `json:"amount"`
	Display string `json:"display"`
}

func money(amount int) Money {
	return Money{Amount: amount, Display: currency.FormatINR(int64(amount))}
}

type DateRange struct {
	From *openapi_types.Date `json:"from"`
	To   *openapi_types.Date `json:"to"`
}

type HotelOptions struct {
	Enabled       bool `json:"enabled"`
	PricePerNight int  `json:"price_per_night"`
	StarRating    int  `json:"star_rating"`
}

type FlightOptions struct {
	Enabled       bool `json:"enabled"`
	TravelerCount int  `json:"traveler_count"`
}

type TransportOptions struct {
	Enabled bool   `json:"enabled"`
	Mode    string `json:"mode"`
}

type Breakdown struct {
	Hotel     Money `json:"hotel"`
	Flights   Money `json:"flights"`
	Transport Money `json:"transport"`
	Total     Money `json:"total"`
}

// Estimate is the response body of every estimate endpoint.
type Estimate struct {
	ID           uuid.UUID        `json:"id"`
	Destination  string           `json:"destination"`
	Dates        DateRange        `json:"dates"`
	Hotel        HotelOptions     `json:"hotel"`
	Flights      FlightOptions    `json:"flights"`
	Transport    TransportOptions `json:"transport"`
	DurationDays int              `json:"duration_days"`
	Breakdown    Breakdown        `json:"breakdown"`
	CanFinalize  bool             `json:"can_finalize"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// PatchEstimateRequest is the body of PATCH /estimates/{id}. Omitted
// fields are left unchanged. "dates" replaces the whole range; a null end
// clears it.
type PatchEstimateRequest struct {
	Destination *string         `json:"destination,omitempty"`
	Dates       *DateRange      `json:"dates,omitempty"`
	Hotel       *HotelPatch     `json:"hotel,omitempty"`
	Flights     *FlightsPatch   `json:"flights,omitempty"`
	Transport   *TransportPatch `json:"transport,omitempty"`
}

type HotelPatch struct {
	Enabled       *bool `json:"enabled,omitempty"`
	PricePerNight *int  `json:"price_per_night,omitempty"`
	StarRating    *int  `json:"star_rating,omitempty"`
}

type FlightsPatch struct {
	Enabled       *bool `json:"enabled,omitempty"`
	TravelerCount *int  `json:"traveler_count,omitempty"`
}

type TransportPatch struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Mode    *string `json:"mode,omitempty"`
}

// TripSummary is the finalized trip handed to the booking step.
type TripSummary struct {
	Destination  string             `json:"destination"`
	From         openapi_types.Date `json:"from"`
	To           openapi_types.Date `json:"to"`
	DurationDays int                `json:"duration_days"`
	Services     estimator.Services `json:"services"`
	Hotel        HotelOptions       `json:"hotel"`
	Flights      FlightOptions      `json:"flights"`
	Transport    TransportOptions   `json:"transport"`
	Breakdown    Breakdown          `json:"breakdown"`
	TotalCost    Money              `json:"total_cost"`
}

// ---- conversions -----------------------------------------------------------

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func breakdownToResponse(b estimator.Breakdown) Breakdown {
	return Breakdown{
		Hotel:     money(b.Hotel),
		Flights:   money(b.Flights),
		Transport: money(b.Transport),
		Total:     money(b.Total),
	}
}

func hotelToResponse(h estimator.HotelOptions) HotelOptions {
	return HotelOptions{Enabled: h.Enabled, PricePerNight: h.PricePerNight, StarRating: h.StarRating}
}

func flightsToResponse(f estimator.FlightOptions) FlightOptions {
	return FlightOptions{Enabled: f.Enabled, TravelerCount: f.TravelerCount}
}

func transportToResponse(t estimator.TransportOptions) TransportOptions {
	return TransportOptions{Enabled: t.Enabled, Mode: string(t.Mode)}
}
