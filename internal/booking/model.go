package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether a status change is legal. Cancellation is
// always reachable; nothing leaves cancelled.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

type Service struct {
	ID              uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	// Price is a fixed-point decimal with 2 fraction digits, kept as the
	// text form of the NUMERIC column (e.g. "75.00").
	Price     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type HealthProfessional struct {
	ID             uuid.UUID
	Name           string
	Specialization string
	Email          string
	Phone          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Appointment struct {
	ID                   uuid.UUID
	ServiceID            uuid.UUID
	HealthProfessionalID uuid.UUID
	CustomerEmail        string
	ScheduledAt          time.Time
	Status               Status
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AppointmentDetail is an appointment with its service and professional
// resolved, so callers can render a response or an email without a second
// round trip.
type AppointmentDetail struct {
	Appointment
	Service      *Service
	Professional *HealthProfessional
}
