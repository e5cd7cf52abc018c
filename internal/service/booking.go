package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/estimator"
	"github.com/indianhorizon/tripplanner/pkg/currency"
	"github.com/indianhorizon/tripplanner/pkg/email"
)

// BookingService turns a finalized estimate into a booking request.
// Bookings are acknowledged and mailed, never stored.
type BookingService struct {
	estimates *EstimateService
	notifier  email.Notifier
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookingService constructs a BookingService. now may be nil, in which
// case time.Now is used.
func NewBookingService(estimates *EstimateService, notifier email.Notifier, logger *slog.Logger, now func() time.Time) *BookingService {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &BookingService{
		estimates: estimates,
		notifier:  notifier,
		validate:  v,
		logger:    logger,
		now:       now,
	}
}

// Submit finalizes the estimate, validates the booking form and issues a
// confirmation. On success the estimate session is discarded.
// Returns an error matching estimator.ErrPrecondition if the estimate cannot
// be finalized, domain.ErrValidation for an invalid form and
// domain.ErrNotFound for an unknown estimate.
func (s *BookingService) Submit(ctx context.Context, estimateID uuid.UUID, req domain.BookingRequest) (domain.BookingConfirmation, error) {
	summary, err := s.estimates.Finalize(ctx, estimateID)
	if err != nil {
		return domain.BookingConfirmation{}, fmt.Errorf("service.BookingService.Submit: %w", err)
	}

	req = normalizeBooking(req, summary.Services())
	if err := s.validate.Struct(req); err != nil {
		return domain.BookingConfirmation{}, validationError(err)
	}

	conf := domain.BookingConfirmation{
		Reference:     uuid.New(),
		Summary:       summary,
		Travelers:     req.Travelers,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		FlightDetails: req.FlightDetails,
		HotelDetails:  req.HotelDetails,
		CabDetails:    req.CabDetails,
		SubmittedAt:   s.now(),
	}
	s.logger.InfoContext(ctx, "booking submitted",
		"reference", conf.Reference,
		"estimate_id", estimateID,
		"destination", summary.Destination,
		"travelers", len(conf.Travelers),
		"total_cost", summary.TotalCost,
	)

	s.notify(ctx, conf)
	if err := s.estimates.Discard(ctx, estimateID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "discard estimate after booking", "estimate_id", estimateID, "error", err)
	}
	return conf, nil
}

// notify mails the confirmation. Failures are logged; the booking stands.
func (s *BookingService) notify(ctx context.Context, conf domain.BookingConfirmation) {
	msg, err := email.RenderBookingConfirmation(bookingEmail(conf))
	if err == nil {
		err = s.notifier.SendEmail(ctx, conf.ContactEmail, msg.Subject, msg.Text, msg.HTML)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "booking confirmation email failed", "reference", conf.Reference, "error", err)
	}
}

func bookingEmail(conf domain.BookingConfirmation) email.BookingData {
	var services []string
	svc := conf.Summary.Services()
	if svc.Flights {
		services = append(services, "Flights")
	}
	if svc.Hotels {
		services = append(services, "Hotel")
	}
	if svc.Cabs {
		services = append(services, string(conf.Summary.Transport.Mode))
	}
	return email.BookingData{
		Name:         conf.Travelers[0].FullName,
		Reference:    conf.Reference.String(),
		Destination:  string(conf.Summary.Destination),
		From:         conf.Summary.From.Format(time.DateOnly),
		To:           conf.Summary.To.Format(time.DateOnly),
		DurationDays: conf.Summary.DurationDays,
		Services:     services,
		Total:        currency.FormatINR(int64(conf.Summary.TotalCost)),
	}
}

// normalizeBooking trims free-text input and drops detail sections for
// services the trip does not include.
func normalizeBooking(req domain.BookingRequest, svc estimator.Services) domain.BookingRequest {
	travelers := make([]domain.Traveler, len(req.Travelers))
	for i, t := range req.Travelers {
		t.FullName = strings.TrimSpace(t.FullName)
		travelers[i] = t
	}
	req.Travelers = travelers
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)

	if !svc.Flights {
		req.FlightDetails = nil
	}
	if !svc.Hotels {
		req.HotelDetails = nil
	}
	if !svc.Cabs {
		req.CabDetails = nil
	}
	return req
}

// validationError flattens validator errors into one domain.ErrValidation.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		msgs[i] = fmt.Sprintf("%s failed %s", field, describeTag(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
