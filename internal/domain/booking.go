package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/estimator"
)

// Traveler is one person on a booking.
type Traveler struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Age      int    `json:"age" validate:"min=1,max=120"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

// FlightDetails holds flight preferences. Only used when the trip
// includes flights.
type FlightDetails struct {
	SeatPreference string `json:"seat_preference,omitempty" validate:"omitempty,oneof=Any Window Aisle"`
}

// HotelDetails holds hotel preferences. Only used when the trip includes
// a hotel stay.
type HotelDetails struct {
	RoomType        string `json:"room_type,omitempty" validate:"omitempty,oneof=Standard Deluxe Suite"`
	SpecialRequests string `json:"special_requests,omitempty" validate:"max=200"`
}

// CabDetails holds cab preferences. Only used when the trip includes local
// transport.
type CabDetails struct {
	PickupLocation string `json:"pickup_location,omitempty" validate:"max=200"`
	CarType        string `json:"car_type,omitempty" validate:"omitempty,oneof=Sedan SUV Van"`
}

// BookingRequest is the content of the multi-step booking form.
type BookingRequest struct {
	Travelers     []Traveler     `json:"travelers" validate:"required,min=1,dive"`
	ContactEmail  string         `json:"contact_email" validate:"required,email"`
	ContactPhone  string         `json:"contact_phone" validate:"required,min=10"`
	FlightDetails *FlightDetails `json:"flight_details,omitempty"`
	HotelDetails  *HotelDetails  `json:"hotel_details,omitempty"`
	CabDetails    *CabDetails    `json:"cab_details,omitempty"`
}

// BookingConfirmation acknowledges a submitted booking. Bookings are not
// stored; the reference is only quoted back to the customer.
type BookingConfirmation struct {
	Reference     uuid.UUID
	Summary       estimator.TripSummary
	Travelers     []Traveler
	ContactEmail  string
	ContactPhone  string
	FlightDetails *FlightDetails
	HotelDetails  *HotelDetails
	CabDetails    *CabDetails
	SubmittedAt   time.Time
}
