package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeAppointmentConfirmation = "appointment:confirmation"

// ConfirmationPayload carries the booked appointment's identity plus the
// resolved service and professional, so the worker can render the email
// without joining back through the API.
type ConfirmationPayload struct {
	AppointmentID    uuid.UUID `json:"appointment_id"`
	CustomerEmail    string    `json:"customer_email"`
	ServiceName      string    `json:"service_name"`
	ProfessionalName string    `json:"professional_name"`
	Specialization   string    `json:"specialization"`
	ScheduledAt      time.Time `json:"scheduled_at"`
}

func NewConfirmationTask(payload ConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentConfirmation, b), nil
}
