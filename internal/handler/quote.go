// quote.go implements GET /estimates/{id}/quote.
// Returns the priced line items of an estimate.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/service"
)

// csvHeaders defines the column names written as the first row of a CSV quote.
var csvHeaders = []string{"item", "detail", "amount"}

// QuoteLine is one priced section of a quote.
type QuoteLine struct {
	Item   string `json:"item"`
	Detail string `json:"detail"`
	Amount Money  `json:"amount"`
}

type Quote struct {
	EstimateID   uuid.UUID   `json:"estimate_id"`
	Destination  string      `json:"destination"`
	DurationDays int         `json:"duration_days"`
	Lines        []QuoteLine `json:"lines"`
	Total        Money       `json:"total"`
}

// GetQuote handles GET /estimates/{id}/quote.
// Only enabled sections are listed. Use ?format=csv to receive CSV;
// default is JSON.
func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusBadRequest, requestBody("format must be json or csv"))
		return
	}

	est, err := s.estimates.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}

	q := buildQuote(est)
	if format == "csv" {
		writeCSV(w, q)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func buildQuote(est service.Estimate) Quote {
	o := est.Options
	b := est.Breakdown
	days := est.DurationDays

	lines := []QuoteLine{}
	if o.Hotel.Enabled {
		lines = append(lines, QuoteLine{
			Item:   "Hotel",
			Detail: fmt.Sprintf("%d-star, %d/night x %d nights", o.Hotel.StarRating, o.Hotel.PricePerNight, days),
			Amount: money(b.Hotel),
		})
	}
	if o.Flights.Enabled {
		lines = append(lines, QuoteLine{
			Item:   "Flights",
			Detail: fmt.Sprintf("%d/person x %d travelers", estimator.FlightRatePerPerson, o.Flights.TravelerCount),
			Amount: money(b.Flights),
		})
	}
	if o.Transport.Enabled {
		lines = append(lines, QuoteLine{
			Item:   "Local transport",
			Detail: fmt.Sprintf("%s, %d/day x %d days", o.Transport.Mode, estimator.TransportRate(o.Transport.Mode), days),
			Amount: money(b.Transport),
		})
	}

	return Quote{
		EstimateID:   est.ID,
		Destination:  string(o.Destination),
		DurationDays: days,
		Lines:        lines,
		Total:        money(b.Total),
	}
}

// writeCSV encodes the quote lines followed by a total row.
// Amounts are plain integers so spreadsheets can sum them.
func writeCSV(w http.ResponseWriter, q Quote) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, l := range q.Lines {
		//nolint:errcheck
		cw.Write([]string{l.Item, l.Detail, strconv.Itoa(l.Amount.Amount)})
	}
	//nolint:errcheck
	cw.Write([]string{"Total", q.Destination, strconv.Itoa(q.Total.Amount)})
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.csv"`, q.EstimateID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
