package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/kafka"
	"github.com/Domenick1991/jetcharter/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CheckAvailability(ctx context.Context, jetID string, from, to time.Time) (*Availability, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, patch UpdatePatch, actorID string) (*domain.Booking, error)
	CancelOwnBooking(ctx context.Context, id, clientID string) (*domain.Booking, error)
	GetForClient(ctx context.Context, id, clientID string) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	CompleteArrived(ctx context.Context) ([]domain.Booking, error)
}

// Cache holds a jet's window in redis while the booking write is in flight.
type Cache interface {
	AcquireJetHold(ctx context.Context, jetID string, from, to time.Time, ttl time.Duration) (bool, error)
	ReleaseJetHold(ctx context.Context, jetID string, from, to time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	jets               repository.JetRepository
	users              repository.UserRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
}

type CreateBookingInput struct {
	ClientID    string
	JetID       string
	Origin      string
	Destination string
	DepartureAt time.Time
	ArrivalAt   time.Time
}

// UpdatePatch carries the admin-editable fields; nil means "leave as is".
type UpdatePatch struct {
	Status      *domain.BookingStatus
	Notes       *string
	DepartureAt *time.Time
	ArrivalAt   *time.Time
}

type Availability struct {
	Available bool             `json:"available"`
	Conflicts []domain.Booking `json:"conflicts"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	jets repository.JetRepository,
	users repository.UserRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		jets:         jets,
		users:        users,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CheckAvailability reports whether [from, to) is free of active bookings for
// the jet. Read-only.
func (s *BookingService) CheckAvailability(ctx context.Context, jetID string, from, to time.Time) (*Availability, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidRange
	}

	conflicts, err := s.bookings.FindConflicts(ctx, jetID, from, to, "")
	if err != nil {
		return nil, err
	}
	return &Availability{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Origin == "" {
		return nil, fmt.Errorf("%w: origin is required", domain.ErrValidation)
	}
	if input.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if !input.DepartureAt.Before(input.ArrivalAt) {
		return nil, domain.ErrInvalidRange
	}

	jet, err := s.jets.GetByID(ctx, input.JetID)
	if err != nil {
		return nil, err
	}
	if !jet.IsActive {
		return nil, domain.ErrJetNotFound
	}

	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireJetHold(ctx, input.JetID, input.DepartureAt, input.ArrivalAt, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrJetHeld
		}
		held = true
	}

	hours := domain.BillableHours(input.DepartureAt, input.ArrivalAt)
	now := time.Now().UTC()

	booking := &domain.Booking{
		ID:          uuid.NewString(),
		ClientID:    input.ClientID,
		JetID:       input.JetID,
		Origin:      input.Origin,
		Destination: input.Destination,
		DepartureAt: input.DepartureAt,
		ArrivalAt:   input.ArrivalAt,
		FlightHours: domain.RoundHours(hours),
		PriceUSD:    domain.Price(hours, jet.HourlyRate),
		Status:      domain.BookingStatusPending,
		StatusHistory: []domain.StatusChange{
			{Status: domain.BookingStatusPending, At: now, By: input.ClientID},
		},
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if held {
			_ = s.cache.ReleaseJetHold(ctx, input.JetID, input.DepartureAt, input.ArrivalAt)
		}
		return nil, err
	}
	if held {
		_ = s.cache.ReleaseJetHold(ctx, input.JetID, input.DepartureAt, input.ArrivalAt)
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// UpdateBooking applies an admin patch. A changed time window is re-validated
// and re-priced against the jet's current hourly rate; a changed status is
// appended to the timeline with the acting admin as actor.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, patch UpdatePatch, actorID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	windowChanged := false
	if patch.DepartureAt != nil || patch.ArrivalAt != nil {
		from, to := booking.DepartureAt, booking.ArrivalAt
		if patch.DepartureAt != nil {
			from = *patch.DepartureAt
		}
		if patch.ArrivalAt != nil {
			to = *patch.ArrivalAt
		}
		if !from.Before(to) {
			return nil, domain.ErrInvalidRange
		}
		if !from.Equal(booking.DepartureAt) || !to.Equal(booking.ArrivalAt) {
			windowChanged = true
			booking.DepartureAt = from
			booking.ArrivalAt = to

			// Reprice with the jet's rate as of now, not as of creation.
			rate := 0.0
			if jet, err := s.jets.GetByID(ctx, booking.JetID); err == nil {
				rate = jet.HourlyRate
			}
			hours := domain.BillableHours(from, to)
			booking.FlightHours = domain.RoundHours(hours)
			booking.PriceUSD = domain.Price(hours, rate)
		}
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *patch.Status)
		}
		if *patch.Status != booking.Status {
			booking.Status = *patch.Status
			booking.StatusHistory = append(booking.StatusHistory, domain.StatusChange{
				Status: *patch.Status,
				At:     time.Now().UTC(),
				By:     actorID,
			})
		}
	}

	if patch.Notes != nil {
		booking.Notes = *patch.Notes
	}

	if err := s.bookings.Update(ctx, booking, windowChanged); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_updated", booking)
	return booking, nil
}

// CancelOwnBooking cancels a client's own booking. A booking the client does
// not own reads as not found rather than forbidden.
func (s *BookingService) CancelOwnBooking(ctx context.Context, id, clientID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetForClient(ctx, id, clientID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, fmt.Errorf("%w: already %s", domain.ErrInvalidState, booking.Status)
	}

	booking.Status = domain.BookingStatusCancelled
	booking.StatusHistory = append(booking.StatusHistory, domain.StatusChange{
		Status: domain.BookingStatusCancelled,
		At:     time.Now().UTC(),
		By:     clientID,
	})

	if err := s.bookings.Update(ctx, booking, false); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *BookingService) GetForClient(ctx context.Context, id, clientID string) (*domain.Booking, error) {
	return s.bookings.GetForClient(ctx, id, clientID)
}

func (s *BookingService) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	return s.bookings.ListByClient(ctx, clientID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// CompleteArrived marks Enroute bookings past their arrival time Completed.
// Called by the worker sweep.
func (s *BookingService) CompleteArrived(ctx context.Context) ([]domain.Booking, error) {
	completed, err := s.bookings.CompleteEnrouteBefore(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, "booking_completed", &completed[i])
	}
	return completed, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	email := ""
	if s.users != nil {
		if u, err := s.users.GetByID(ctx, booking.ClientID); err == nil {
			email = u.Email
		}
	}

	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		ClientEmail: email,
		JetID:       booking.JetID,
		Origin:      booking.Origin,
		Destination: booking.Destination,
		Status:      string(booking.Status),
		PriceUSD:    booking.PriceUSD,
		DepartureAt: booking.DepartureAt,
		ArrivalAt:   booking.ArrivalAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, booking.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
