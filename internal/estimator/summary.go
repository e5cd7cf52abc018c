package estimator

import (
	"errors"
	"strings"
	"time"
)

// TripSummary is the immutable snapshot handed to the booking step.
// It holds values only, so later changes to the Estimator never reach it.
type TripSummary struct {
	Destination  Destination      `json:"destination"`
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	DurationDays int              `json:"duration_days"`
	Hotel        HotelOptions     `json:"hotel"`
	Flights      FlightOptions    `json:"flights"`
	Transport    TransportOptions `json:"transport"`
	Breakdown    Breakdown        `json:"breakdown"`
	TotalCost    int              `json:"total_cost"`
}

// Services reports which booking-form sections apply to the trip.
// Local transport is booked as cabs.
type Services struct {
	Flights bool `json:"flights"`
	Hotels  bool `json:"hotels"`
	Cabs    bool `json:"cabs"`
}

func (s TripSummary) Services() Services {
	return Services{
		Flights: s.Flights.Enabled,
		Hotels:  s.Hotel.Enabled,
		Cabs:    s.Transport.Enabled,
	}
}

// ErrPrecondition matches every *PreconditionError via errors.Is.
var ErrPrecondition = errors.New("precondition failed")

// PreconditionError is returned by Finalize when the trip cannot be booked
// yet. Reasons lists every unmet condition.
type PreconditionError struct {
	Reasons []string
}

func (e *PreconditionError) Error() string {
	return ErrPrecondition.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
