package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

// BookingRequest is the body of POST /bookings: the booking form plus the
// estimate it books.
type BookingRequest struct {
	EstimateID uuid.UUID `json:"estimate_id"`
	domain.BookingRequest
}

type BookingConfirmation struct {
	Reference     uuid.UUID             `json:"reference"`
	SubmittedAt   time.Time             `json:"submitted_at"`
	Summary       TripSummary           `json:"summary"`
	Travelers     []domain.Traveler     `json:"travelers"`
	ContactEmail  string                `json:"contact_email"`
	ContactPhone  string                `json:"contact_phone"`
	FlightDetails *domain.FlightDetails `json:"flight_details,omitempty"`
	HotelDetails  *domain.HotelDetails  `json:"hotel_details,omitempty"`
	CabDetails    *domain.CabDetails    `json:"cab_details,omitempty"`
}

// SubmitBooking handles POST /bookings.
func (s *Server) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}
	if body.EstimateID == uuid.Nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: "estimate_id is required"},
		})
		return
	}

	conf, err := s.bookings.Submit(r.Context(), body.EstimateID, body.BookingRequest)
	if err != nil {
		s.writeError(w, r, err, estimateNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, BookingConfirmation{
		Reference:     conf.Reference,
		SubmittedAt:   conf.SubmittedAt.UTC(),
		Summary:       summaryToResponse(conf.Summary),
		Travelers:     conf.Travelers,
		ContactEmail:  conf.ContactEmail,
		ContactPhone:  conf.ContactPhone,
		FlightDetails: conf.FlightDetails,
		HotelDetails:  conf.HotelDetails,
		CabDetails:    conf.CabDetails,
	})
}
