package estimator

import "time"

// Estimator holds the options of one estimator session together with the
// values derived from them.
type Estimator struct {
	opts      TripOptions
	duration  int
	breakdown Breakdown
	now       func() time.Time
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithClock overrides the clock used to pick the default date range.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// New returns an Estimator initialised with DefaultOptions for today.
func New(opts ...Option) *Estimator {
	e := &Estimator{now: time.Now}
	for _, o := range opts {
		o(e)
	}
	e.Reset()
	return e
}

// Restore returns an Estimator holding a clamped copy of opts. It is used
// to rehydrate a session whose options were stored between requests.
func Restore(opts TripOptions, options ...Option) *Estimator {
	e := &Estimator{now: time.Now}
	for _, o := range options {
		o(e)
	}
	e.opts = opts.normalize()
	e.recompute()
	return e
}

// SetDestination stores d as given. Membership in Destinations is checked
// by callers that accept user input, not here.
func (e *Estimator) SetDestination(d Destination) {
	e.opts.Destination = d
	e.recompute()
}

// SetDateRange replaces both ends of the date range. Either may be nil.
func (e *Estimator) SetDateRange(from, to *time.Time) {
	e.opts.Dates = DateRange{From: copyDate(from), To: copyDate(to)}
	e.recompute()
}

func (e *Estimator) ToggleHotel(enabled bool) {
	e.opts.Hotel.Enabled = enabled
	e.recompute()
}

// SetHotelPrice sets the nightly price, clamped to [MinHotelPrice, MaxHotelPrice].
func (e *Estimator) SetHotelPrice(price int) {
	e.opts.Hotel.PricePerNight = clamp(price, MinHotelPrice, MaxHotelPrice)
	e.recompute()
}

// SetHotelStars sets the star rating, clamped to [MinStarRating, MaxStarRating].
func (e *Estimator) SetHotelStars(stars int) {
	e.opts.Hotel.StarRating = clamp(stars, MinStarRating, MaxStarRating)
	e.recompute()
}

func (e *Estimator) ToggleFlights(enabled bool) {
	e.opts.Flights.Enabled = enabled
	e.recompute()
}

// SetTravelerCount sets the flight traveler count, clamped to
// [MinTravelers, MaxTravelers].
func (e *Estimator) SetTravelerCount(n int) {
	e.opts.Flights.TravelerCount = clamp(n, MinTravelers, MaxTravelers)
	e.recompute()
}

func (e *Estimator) ToggleTransport(enabled bool) {
	e.opts.Transport.Enabled = enabled
	e.recompute()
}

// SetTransportMode selects the transport mode. An unknown mode leaves the
// current mode in place.
func (e *Estimator) SetTransportMode(m TransportMode) {
	if m.Known() {
		e.opts.Transport.Mode = m
	}
	e.recompute()
}

// Reset restores DefaultOptions for the current day.
func (e *Estimator) Reset() {
	e.opts = DefaultOptions(e.now())
	e.recompute()
}

// Options returns a copy of the current options.
func (e *Estimator) Options() TripOptions {
	return e.opts.clone()
}

// DurationDays returns the inclusive trip length, or 0 when it cannot be
// priced yet.
func (e *Estimator) DurationDays() int {
	return e.duration
}

// TotalCost returns the total derived after the last mutation.
func (e *Estimator) TotalCost() int {
	return e.breakdown.Total
}

// Breakdown returns the per-section contributions to TotalCost.
func (e *Estimator) Breakdown() Breakdown {
	return e.breakdown
}

// ComputeTotalCost prices the current options from scratch. It has no
// side effects and always agrees with TotalCost.
func (e *Estimator) ComputeTotalCost() int {
	return TotalCost(e.opts)
}

// CanFinalize reports whether the trip has a destination, a positive
// duration and a positive cost.
func (e *Estimator) CanFinalize() bool {
	return len(e.unmet()) == 0
}

// Finalize returns an immutable summary of the trip, or a
// *PreconditionError listing what is still missing.
func (e *Estimator) Finalize() (TripSummary, error) {
	if reasons := e.unmet(); len(reasons) > 0 {
		return TripSummary{}, &PreconditionError{Reasons: reasons}
	}
	return TripSummary{
		Destination:  e.opts.Destination,
		From:         *e.opts.Dates.From,
		To:           *e.opts.Dates.To,
		DurationDays: e.duration,
		Hotel:        e.opts.Hotel,
		Flights:      e.opts.Flights,
		Transport:    e.opts.Transport,
		Breakdown:    e.breakdown,
		TotalCost:    e.breakdown.Total,
	}, nil
}

func (e *Estimator) unmet() []string {
	var reasons []string
	if e.opts.Destination == "" {
		reasons = append(reasons, "destination is not selected")
	}
	if e.duration <= 0 {
		reasons = append(reasons, "travel dates are not selected")
	}
	if e.breakdown.Total <= 0 {
		reasons = append(reasons, "estimated cost is zero")
	}
	return reasons
}

func (e *Estimator) recompute() {
	e.duration = DurationDays(e.opts.Dates)
	e.breakdown = PriceBreakdown(e.opts)
}
