package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/internal/service"
)

const estimateNotFound = "estimate not found"

// StartEstimate handles POST /estimates.
func (s *Server) StartEstimate(w http.ResponseWriter, r *http.Request) {
	est, err := s.estimates.Start(r.Context())
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, estimateToResponse(est))
}

// GetEstimate handles GET /estimates/{id}.
func (s *Server) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}
	est, err := s.estimates.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, estimateToResponse(est))
}

// PatchEstimate handles PATCH /estimates/{id}.
func (s *Server) PatchEstimate(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}
	var body PatchEstimateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	est, err := s.estimates.Apply(r.Context(), id, requestToPatch(body))
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, estimateToResponse(est))
}

// ResetEstimate handles POST /estimates/{id}/reset.
func (s *Server) ResetEstimate(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}
	est, err := s.estimates.Reset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, estimateToResponse(est))
}

// FinalizeEstimate handles POST /estimates/{id}/finalize.
// Returns 409 with the unmet conditions when the trip cannot be booked yet.
func (s *Server) FinalizeEstimate(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}
	summary, err := s.estimates.Finalize(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}

// DiscardEstimate handles DELETE /estimates/{id}.
func (s *Server) DiscardEstimate(w http.ResponseWriter, r *http.Request) {
	id, ok := estimateID(w, r)
	if !ok {
		return
	}
	if err := s.estimates.Discard(r.Context(), id); err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// estimateID parses the {id} path parameter, writing a 400 if it is not a UUID.
func estimateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid estimate id"))
		return uuid.Nil, false
	}
	return id, true
}

func requestToPatch(body PatchEstimateRequest) service.Patch {
	var p service.Patch
	if body.Destination != nil {
		d := estimator.Destination(*body.Destination)
		p.Destination = &d
	}
	if body.Dates != nil {
		p.Dates = &estimator.DateRange{From: fromDate(body.Dates.From), To: fromDate(body.Dates.To)}
	}
	if h := body.Hotel; h != nil {
		p.Hotel = &service.HotelPatch{Enabled: h.Enabled, PricePerNight: h.PricePerNight, StarRating: h.StarRating}
	}
	if f := body.Flights; f != nil {
		p.Flights = &service.FlightsPatch{Enabled: f.Enabled, TravelerCount: f.TravelerCount}
	}
	if t := body.Transport; t != nil {
		p.Transport = &service.TransportPatch{Enabled: t.Enabled}
		if t.Mode != nil {
			m := estimator.TransportMode(*t.Mode)
			p.Transport.Mode = &m
		}
	}
	return p
}

func estimateToResponse(est service.Estimate) Estimate {
	o := est.Options
	return Estimate{
		ID:          est.ID,
		Destination: string(o.Destination),
		Dates: DateRange{
			From: toDate(o.Dates.From),
			To:   toDate(o.Dates.To),
		},
		Hotel:        hotelToResponse(o.Hotel),
		Flights:      flightsToResponse(o.Flights),
		Transport:    transportToResponse(o.Transport),
		DurationDays: est.DurationDays,
		Breakdown:    breakdownToResponse(est.Breakdown),
		CanFinalize:  est.CanFinalize,
		UpdatedAt:    est.UpdatedAt.UTC(),
	}
}

func summaryToResponse(s estimator.TripSummary) TripSummary {
	return TripSummary{
		Destination:  string(s.Destination),
		From:         *toDate(&s.From),
		To:           *toDate(&s.To),
		DurationDays: s.DurationDays,
		Services:     s.Services(),
		Hotel:        hotelToResponse(s.Hotel),
		Flights:      flightsToResponse(s.Flights),
		Transport:    transportToResponse(s.Transport),
		Breakdown:    breakdownToResponse(s.Breakdown),
		TotalCost:    money(s.TotalCost),
	}
}
