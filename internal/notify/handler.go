package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/carewell/clinic-booking/internal/booking"
)

// ConfirmationHandler processes queued confirmation emails. A returned error
// makes asynq retry the task up to its MaxRetry.
type ConfirmationHandler struct {
	repo   booking.Repository
	sender EmailSender
	from   string
}

func NewConfirmationHandler(repo booking.Repository, sender EmailSender, from string) *ConfirmationHandler {
	return &ConfirmationHandler{
		repo:   repo,
		sender: sender,
		from:   from,
	}
}

func (h *ConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p ConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Error().Err(err).Msg("invalid confirmation payload")
		return fmt.Errorf("unmarshal confirmation payload: %v: %w", err, asynq.SkipRetry)
	}

	// Re-read the row so an appointment cancelled (or cascade-deleted) while
	// the task waited in the queue does not get a confirmation.
	appt, err := h.repo.GetAppointmentByID(ctx, p.AppointmentID)
	if err != nil {
		if errors.Is(err, booking.ErrAppointmentNotFound) {
			log.Warn().
				Str("appointment_id", p.AppointmentID.String()).
				Msg("appointment gone before confirmation email, dropping task")
			return nil
		}
		return fmt.Errorf("load appointment %s: %w", p.AppointmentID, err)
	}
	if appt.Status == booking.StatusCancelled {
		log.Info().
			Str("appointment_id", appt.ID.String()).
			Msg("appointment cancelled before confirmation email, dropping task")
		return nil
	}

	email := Email{
		From:    h.from,
		To:      p.CustomerEmail,
		Subject: "Appointment Confirmation",
		Text:    confirmationBody(p),
	}

	if err := h.sender.Send(ctx, email); err != nil {
		log.Error().Err(err).
			Str("appointment_id", appt.ID.String()).
			Str("to", p.CustomerEmail).
			Msg("confirmation email delivery failed")
		return err
	}

	log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("to", p.CustomerEmail).
		Msg("confirmation email sent")
	return nil
}

func confirmationBody(p ConfirmationPayload) string {
	return fmt.Sprintf(`Dear Customer,

Your appointment has been successfully booked with the following details:

  Service: %s
  Health Professional: %s (%s)
  Date & Time: %s
  Email: %s

If you need to make any changes, please contact us.

Thank you for choosing our services!
`,
		p.ServiceName,
		p.ProfessionalName,
		p.Specialization,
		p.ScheduledAt.Format("Monday, January 2, 2006 at 3:04 PM"),
		p.CustomerEmail,
	)
}
