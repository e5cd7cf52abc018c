package handler

import (
	"net/http"

	"github.com/indianhorizon/tripplanner/internal/estimator"
)

type TransportRate struct {
	Mode   string `json:"mode"`
	PerDay Money  `json:"per_day"`
}

type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
	Step    int `json:"step,omitempty"`
}

// RateCard lists the fixed prices and input ranges of the estimator.
type RateCard struct {
	Destinations      []string        `json:"destinations"`
	FlightPerPerson   Money           `json:"flight_per_person"`
	Transport         []TransportRate `json:"transport"`
	HotelPrice        Range           `json:"hotel_price_per_night"`
	StarRating        Range           `json:"star_rating"`
	Travelers         Range           `json:"travelers"`
	DefaultTripLength int             `json:"default_trip_length_days"`
}

// GetRates handles GET /estimator/rates.
func (s *Server) GetRates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rateCard())
}

func rateCard() RateCard {
	card := RateCard{
		Destinations:    make([]string, len(estimator.Destinations)),
		FlightPerPerson: money(estimator.FlightRatePerPerson),
		Transport:       make([]TransportRate, len(estimator.TransportModes)),
		HotelPrice: Range{
			Min:     estimator.MinHotelPrice,
			Max:     estimator.MaxHotelPrice,
			Default: estimator.DefaultHotelPrice,
			Step:    estimator.HotelPriceStep,
		},
		StarRating: Range{
			Min:     estimator.MinStarRating,
			Max:     estimator.MaxStarRating,
			Default: estimator.DefaultStarRating,
		},
		Travelers: Range{
			Min:     estimator.MinTravelers,
			Max:     estimator.MaxTravelers,
			Default: estimator.DefaultTravelers,
		},
		DefaultTripLength: estimator.DefaultTripLength,
	}
	for i, d := range estimator.Destinations {
		card.Destinations[i] = string(d)
	}
	for i, m := range estimator.TransportModes {
		card.Transport[i] = TransportRate{Mode: string(m), PerDay: money(estimator.TransportRate(m))}
	}
	return card
}
