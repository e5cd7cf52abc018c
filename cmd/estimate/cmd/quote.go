package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/pkg/currency"
)

// now is the clock used for the default date range.
var now = time.Now

type quoteOptions struct {
	destination string
	from        string
	to          string
	hotelPrice  int
	stars       int
	travelers   int
	transport   string
	noHotel     bool
	noFlights   bool
	noTransport bool
	format      string
}

func newQuoteCmd() *cobra.Command {
	var o quoteOptions
	c := &cobra.Command{
		Use:   "quote",
		Short: "Price a trip",
		Long: `Price a trip and print its summary.

Every section is included unless switched off with --no-hotel, --no-flights
or --no-transport. Dates default to today plus seven days. Exits non-zero,
listing what is missing, when the trip cannot be priced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.destination, "destination", "d", "", "destination (Goa, Kerala, Rajasthan, Himalayas)")
	f.StringVar(&o.from, "from", "", "first travel day, YYYY-MM-DD")
	f.StringVar(&o.to, "to", "", "last travel day, YYYY-MM-DD")
	f.IntVar(&o.hotelPrice, "hotel-price", estimator.DefaultHotelPrice, "hotel price per night in rupees")
	f.IntVar(&o.stars, "stars", estimator.DefaultStarRating, "hotel star rating")
	f.IntVarP(&o.travelers, "travelers", "t", estimator.DefaultTravelers, "number of travelers flying")
	f.StringVar(&o.transport, "transport", string(estimator.Cab), "local transport (Cab, Bus, Train)")
	f.BoolVar(&o.noHotel, "no-hotel", false, "leave out the hotel")
	f.BoolVar(&o.noFlights, "no-flights", false, "leave out flights")
	f.BoolVar(&o.noTransport, "no-transport", false, "leave out local transport")
	f.StringVarP(&o.format, "format", "f", "text", "output format (text, json)")
	return c
}

func runQuote(out io.Writer, o quoteOptions) error {
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unknown format %q", o.format)
	}
	dest := estimator.Destination(o.destination)
	if !dest.Known() {
		return fmt.Errorf("unknown destination %q (choose one of %s)", o.destination, joinDestinations())
	}
	mode := estimator.TransportMode(o.transport)
	if !mode.Known() {
		return fmt.Errorf("unknown transport %q", o.transport)
	}

	e := estimator.New(estimator.WithClock(now))
	defaults := e.Options().Dates
	from, err := parseDate("from", o.from, defaults.From)
	if err != nil {
		return err
	}
	to, err := parseDate("to", o.to, defaults.To)
	if err != nil {
		return err
	}

	e.SetDestination(dest)
	e.SetDateRange(from, to)
	e.ToggleHotel(!o.noHotel)
	e.SetHotelPrice(o.hotelPrice)
	e.SetHotelStars(o.stars)
	e.ToggleFlights(!o.noFlights)
	e.SetTravelerCount(o.travelers)
	e.ToggleTransport(!o.noTransport)
	e.SetTransportMode(mode)

	summary, err := e.Finalize()
	if err != nil {
		var perr *estimator.PreconditionError
		if errors.As(err, &perr) {
			return fmt.Errorf("trip cannot be priced: %s", strings.Join(perr.Reasons, "; "))
		}
		return err
	}

	if o.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return printSummary(out, summary)
}

func printSummary(out io.Writer, s estimator.TripSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Destination:\t%s\n", s.Destination)
	fmt.Fprintf(w, "Dates:\t%s to %s (%d days)\n", s.From.Format(time.DateOnly), s.To.Format(time.DateOnly), s.DurationDays)
	if s.Hotel.Enabled {
		fmt.Fprintf(w, "Hotel:\t%s\t%d-star, %s/night\n", inr(s.Breakdown.Hotel), s.Hotel.StarRating, inr(s.Hotel.PricePerNight))
	}
	if s.Flights.Enabled {
		fmt.Fprintf(w, "Flights:\t%s\t%d traveler(s)\n", inr(s.Breakdown.Flights), s.Flights.TravelerCount)
	}
	if s.Transport.Enabled {
		fmt.Fprintf(w, "Transport:\t%s\t%s\n", inr(s.Breakdown.Transport), s.Transport.Mode)
	}
	fmt.Fprintf(w, "Total:\t%s\t\n", inr(s.TotalCost))
	return w.Flush()
}

func parseDate(name, value string, fallback *time.Time) (*time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}

func joinDestinations() string {
	names := make([]string, len(estimator.Destinations))
	for i, d := range estimator.Destinations {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

func inr(amount int) string {
	return currency.FormatINR(int64(amount))
}
