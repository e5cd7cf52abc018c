// Package estimator implements the trip cost estimation engine.
//
// An Estimator owns one set of TripOptions. Every mutating method applies
// its change and then recomputes the derived values (duration and total
// cost) before returning, so callers never observe a stale total.
// An Estimator is not safe for concurrent use; each session owns its own.
package estimator

import "time"

// Destination is one of the destinations offered by the estimator.
// The zero value means no destination has been selected.
type Destination string

const (
	Goa       Destination = "Goa"
	Kerala    Destination = "Kerala"
	Rajasthan Destination = "Rajasthan"
	Himalayas Destination = "Himalayas"
)

// Destinations lists the selectable destinations in display order.
var Destinations = []Destination{Goa, Kerala, Rajasthan, Himalayas}

// Known reports whether d is one of Destinations.
func (d Destination) Known() bool {
	for _, known := range Destinations {
		if d == known {
			return true
		}
	}
	return false
}

// TransportMode is the kind of local transport priced per day.
type TransportMode string

const (
	Cab   TransportMode = "Cab"
	Bus   TransportMode = "Bus"
	Train TransportMode = "Train"
)

// TransportModes lists the transport modes in display order.
var TransportModes = []TransportMode{Cab, Bus, Train}

// Known reports whether m has a rate.
func (m TransportMode) Known() bool {
	_, ok := transportRates[m]
	return ok
}

// Bounds for the numeric options. Setters clamp input to these ranges.
const (
	MinHotelPrice     = 0
	MaxHotelPrice     = 10000
	HotelPriceStep    = 500
	DefaultHotelPrice = 1500

	MinStarRating     = 2
	MaxStarRating     = 5
	DefaultStarRating = 3

	MinTravelers     = 1
	MaxTravelers     = 10
	DefaultTravelers = 1

	// DefaultTripLength is how many days after today the default date
	// range ends.
	DefaultTripLength = 7
)

// DateRange is an inclusive range of calendar dates. Either end may be nil
// while the user is still picking.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// HotelOptions configures the hotel section.
type HotelOptions struct {
	Enabled       bool `json:"enabled"`
	PricePerNight int  `json:"price_per_night"`
	StarRating    int  `json:"star_rating"`
}

// FlightOptions configures the flights section.
type FlightOptions struct {
	Enabled       bool `json:"enabled"`
	TravelerCount int  `json:"traveler_count"`
}

// TransportOptions configures the local transport section.
type TransportOptions struct {
	Enabled bool          `json:"enabled"`
	Mode    TransportMode `json:"mode"`
}

// TripOptions is the full set of user-selected trip parameters.
// Section parameters keep their values while the section is disabled so
// that toggling a section back on restores the prior input.
type TripOptions struct {
	Destination Destination      `json:"destination,omitempty"`
	Dates       DateRange        `json:"dates"`
	Hotel       HotelOptions     `json:"hotel"`
	Flights     FlightOptions    `json:"flights"`
	Transport   TransportOptions `json:"transport"`
}

// DefaultOptions returns the options a fresh session starts with: no
// destination, a DefaultTripLength range starting today, and every
// section switched off at its default parameters.
func DefaultOptions(today time.Time) TripOptions {
	from := CalendarDate(today)
	to := from.AddDate(0, 0, DefaultTripLength)
	return TripOptions{
		Dates: DateRange{From: &from, To: &to},
		Hotel: HotelOptions{
			PricePerNight: DefaultHotelPrice,
			StarRating:    DefaultStarRating,
		},
		Flights: FlightOptions{
			TravelerCount: DefaultTravelers,
		},
		Transport: TransportOptions{
			Mode: Cab,
		},
	}
}

// clone returns a deep copy so that the date pointers are never shared.
func (o TripOptions) clone() TripOptions {
	out := o
	out.Dates = DateRange{From: copyDate(o.Dates.From), To: copyDate(o.Dates.To)}
	return out
}

// normalize clamps every parameter into its domain. Unknown transport
// modes fall back to Cab; destinations are left as given.
func (o TripOptions) normalize() TripOptions {
	out := o.clone()
	out.Hotel.PricePerNight = clamp(out.Hotel.PricePerNight, MinHotelPrice, MaxHotelPrice)
	out.Hotel.StarRating = clamp(out.Hotel.StarRating, MinStarRating, MaxStarRating)
	out.Flights.TravelerCount = clamp(out.Flights.TravelerCount, MinTravelers, MaxTravelers)
	if !out.Transport.Mode.Known() {
		out.Transport.Mode = Cab
	}
	return out
}

// CalendarDate truncates t to midnight UTC of its calendar date in t's
// own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := CalendarDate(*t)
	return &d
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
