package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	redisclient "github.com/carewell/clinic-booking/internal/redis"
)

var (
	ErrTimeSlotTaken           = errors.New("the selected time slot is not available for this health professional")
	ErrSlotBeingBooked         = errors.New("time slot is currently being booked, please retry")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Dispatcher hands a committed booking off for out-of-band confirmation
// delivery. Enqueue failures never roll the booking back.
type Dispatcher interface {
	EnqueueConfirmation(ctx context.Context, detail *AppointmentDetail) error
}

// CreateInput is a typed, already-validated booking request. The service
// still resolves both references itself rather than trusting the caller.
type CreateInput struct {
	ServiceID            uuid.UUID
	HealthProfessionalID uuid.UUID
	CustomerEmail        string
	ScheduledAt          time.Time
	Notes                *string
}

type BookingService struct {
	repo         Repository
	locker       redisclient.Locker
	dispatcher   Dispatcher
	availability *AvailabilityChecker
}

func NewBookingService(repo Repository, locker redisclient.Locker, dispatcher Dispatcher) *BookingService {
	return &BookingService{
		repo:         repo,
		locker:       locker,
		dispatcher:   dispatcher,
		availability: NewAvailabilityChecker(repo),
	}
}

// CreateAppointment books a professional for a customer. The availability
// check and the insert run as one atomic unit: a per-professional lock
// serializes concurrent requests and the repository re-checks the conflict
// window inside the insert transaction. Exactly one confirmation job is
// enqueued after commit; none for a rejected booking.
func (s *BookingService) CreateAppointment(ctx context.Context, in CreateInput) (*AppointmentDetail, error) {
	svc, err := s.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load service: %w", err)
	}

	prof, err := s.repo.GetProfessionalByID(ctx, in.HealthProfessionalID)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load health professional: %w", err)
	}

	var created *Appointment

	err = s.locker.WithProfessionalLock(ctx, in.HealthProfessionalID, func(lockCtx context.Context) error {
		available, err := s.availability.IsAvailable(lockCtx, in.HealthProfessionalID, in.ScheduledAt)
		if err != nil {
			return fmt.Errorf("availability check: %w", err)
		}
		if !available {
			return ErrTimeSlotTaken
		}

		appt, err := s.repo.CreateIfAvailable(lockCtx, NewAppointment{
			ServiceID:            in.ServiceID,
			HealthProfessionalID: in.HealthProfessionalID,
			CustomerEmail:        in.CustomerEmail,
			ScheduledAt:          in.ScheduledAt,
			Notes:                in.Notes,
		})
		if err != nil {
			return err
		}

		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	detail := &AppointmentDetail{
		Appointment:  *created,
		Service:      svc,
		Professional: prof,
	}

	// The row is committed; a failed enqueue is a logged inconsistency, not
	// a booking failure.
	if err := s.dispatcher.EnqueueConfirmation(ctx, detail); err != nil {
		log.Error().Err(err).
			Str("appointment_id", created.ID.String()).
			Str("customer_email", created.CustomerEmail).
			Msg("failed to enqueue confirmation")
	}

	return detail, nil
}

// ConfirmAppointment moves a pending appointment to confirmed. Any other
// current status is an illegal transition.
func (s *BookingService) ConfirmAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(appt.Status, StatusConfirmed) {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, id, StatusPending, StatusConfirmed)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// Lost the race with a concurrent transition.
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("confirm appointment: %w", err)
	}

	return updated, nil
}

// CancelAppointment sets the status to cancelled if the row exists.
// Cancelling an already-cancelled or confirmed appointment is allowed and
// idempotent; the result is false only when the id is unknown.
func (s *BookingService) CancelAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.CancelAppointment(ctx, id)
}

// GetAppointment retrieves a fully hydrated appointment by ID.
func (s *BookingService) GetAppointment(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	return s.repo.GetAppointmentDetail(ctx, id)
}

// ListCustomerAppointments returns every appointment for the email, any
// status, most recent scheduled time first, relations resolved.
func (s *BookingService) ListCustomerAppointments(ctx context.Context, email string) ([]AppointmentDetail, error) {
	result, err := s.repo.ListByCustomerEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list customer appointments: %w", err)
	}
	return result, nil
}

// Catalog reads, exposed through the same service so the API has a single
// dependency.

func (s *BookingService) ListServices(ctx context.Context) ([]Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *BookingService) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return s.repo.GetServiceByID(ctx, id)
}

func (s *BookingService) ListProfessionals(ctx context.Context) ([]HealthProfessional, error) {
	return s.repo.ListProfessionals(ctx)
}

func (s *BookingService) GetProfessional(ctx context.Context, id uuid.UUID) (*HealthProfessional, error) {
	return s.repo.GetProfessionalByID(ctx, id)
}
