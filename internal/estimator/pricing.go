package estimator

// FlightRatePerPerson is the one-time flight charge per traveler. It does
// not scale with trip duration.
const FlightRatePerPerson = 8000

// transportRates holds the per-day price of each transport mode.
var transportRates = map[TransportMode]int{
	Cab:   500,
	Bus:   200,
	Train: 150,
}

// TransportRate returns the per-day price of m, or 0 for an unknown mode.
func TransportRate(m TransportMode) int {
	return transportRates[m]
}

// Breakdown is the contribution of each section to the total cost.
type Breakdown struct {
	Hotel     int `json:"hotel"`
	Flights   int `json:"flights"`
	Transport int `json:"transport"`
	Total     int `json:"total"`
}

// DurationDays returns the inclusive number of calendar days in r.
// It returns 0 when either end is unset or To is before From.
func DurationDays(r DateRange) int {
	if r.From == nil || r.To == nil {
		return 0
	}
	from, to := CalendarDate(*r.From), CalendarDate(*r.To)
	if to.Before(from) {
		return 0
	}
	// Both ends are UTC midnights, so every day is exactly 24h.
	return int(to.Sub(from).Hours()/24) + 1
}

// PriceBreakdown prices o section by section. Nothing is charged until the
// trip has a positive duration, and disabled sections contribute 0.
func PriceBreakdown(o TripOptions) Breakdown {
	var b Breakdown
	days := DurationDays(o.Dates)
	if days <= 0 {
		return b
	}
	if o.Hotel.Enabled {
		b.Hotel = o.Hotel.PricePerNight * days
	}
	if o.Flights.Enabled {
		b.Flights = o.Flights.TravelerCount * FlightRatePerPerson
	}
	if o.Transport.Enabled {
		b.Transport = TransportRate(o.Transport.Mode) * days
	}
	b.Total = b.Hotel + b.Flights + b.Transport
	return b
}

// TotalCost is the pure pricing function over o.
func TotalCost(o TripOptions) int {
	return PriceBreakdown(o).Total
}
