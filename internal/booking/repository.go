package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrProfessionalNotFound = errors.New("health professional not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
)

// NewAppointment is the validated input for the transactional create.
type NewAppointment struct {
	ServiceID            uuid.UUID
	HealthProfessionalID uuid.UUID
	CustomerEmail        string
	ScheduledAt          time.Time
	Notes                *string
}

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	ListServices(ctx context.Context) ([]Service, error)

	GetProfessionalByID(ctx context.Context, id uuid.UUID) (*HealthProfessional, error)
	ListProfessionals(ctx context.Context) ([]HealthProfessional, error)

	// HasConflictInWindow reports whether any non-cancelled appointment for
	// the professional has scheduled_at inside the closed window [from, to].
	HasConflictInWindow(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (bool, error)

	// CreateIfAvailable runs the conflict re-check and the insert inside a
	// single transaction. Returns ErrTimeSlotTaken with no partial writes
	// when the window is occupied.
	CreateIfAvailable(ctx context.Context, appt NewAppointment) (*Appointment, error)

	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]AppointmentDetail, error)

	// UpdateAppointmentStatus applies status = to only when the row still has
	// status = from. Returns ErrAppointmentNotFound when nothing matched.
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)

	// CancelAppointment sets status = cancelled unconditionally. The bool is
	// false when no row with the id exists.
	CancelAppointment(ctx context.Context, id uuid.UUID) (bool, error)

	DeleteAppointment(ctx context.Context, id uuid.UUID) (bool, error)
}
