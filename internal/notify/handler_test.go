package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carewell/clinic-booking/internal/booking"
	"github.com/carewell/clinic-booking/internal/notify"
)

// apptRepo stubs only the lookup the handler uses; everything else panics
// through the embedded nil interface.
type apptRepo struct {
	booking.Repository
	appt *booking.Appointment
	err  error
}

func (r *apptRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.appt, nil
}

type recordingSender struct {
	sent []notify.Email
	err  error
}

func (s *recordingSender) Send(ctx context.Context, email notify.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func confirmationTask(t *testing.T, p notify.ConfirmationPayload) *asynq.Task {
	t.Helper()
	task, err := notify.NewConfirmationTask(p)
	require.NoError(t, err)
	return task
}

func TestConfirmationHandler_SendsEmail(t *testing.T) {
	apptID := uuid.New()
	repo := &apptRepo{appt: &booking.Appointment{
		ID:     apptID,
		Status: booking.StatusPending,
	}}
	sender := &recordingSender{}
	handler := notify.NewConfirmationHandler(repo, sender, "bookings@clinic.example")

	payload := notify.ConfirmationPayload{
		AppointmentID:    apptID,
		CustomerEmail:    "jane@example.com",
		ServiceName:      "General Consultation",
		ProfessionalName: "Dr. Amara Osei",
		Specialization:   "General Practice",
		ScheduledAt:      time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
	}

	err := handler.ProcessTask(context.Background(), confirmationTask(t, payload))
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "bookings@clinic.example", email.From)
	assert.Equal(t, "jane@example.com", email.To)
	assert.Equal(t, "Appointment Confirmation", email.Subject)
	assert.Contains(t, email.Text, "General Consultation")
	assert.Contains(t, email.Text, "Dr. Amara Osei (General Practice)")
	assert.Contains(t, email.Text, "Monday, September 14, 2026 at 10:00 AM")
}

func TestConfirmationHandler_DropsCancelled(t *testing.T) {
	apptID := uuid.New()
	repo := &apptRepo{appt: &booking.Appointment{
		ID:     apptID,
		Status: booking.StatusCancelled,
	}}
	sender := &recordingSender{}
	handler := notify.NewConfirmationHandler(repo, sender, "bookings@clinic.example")

	err := handler.ProcessTask(context.Background(), confirmationTask(t, notify.ConfirmationPayload{
		AppointmentID: apptID,
		CustomerEmail: "jane@example.com",
	}))

	// Dropped, not retried.
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestConfirmationHandler_DropsMissingAppointment(t *testing.T) {
	repo := &apptRepo{err: booking.ErrAppointmentNotFound}
	sender := &recordingSender{}
	handler := notify.NewConfirmationHandler(repo, sender, "bookings@clinic.example")

	err := handler.ProcessTask(context.Background(), confirmationTask(t, notify.ConfirmationPayload{
		AppointmentID: uuid.New(),
		CustomerEmail: "jane@example.com",
	}))

	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestConfirmationHandler_SenderFailureRetries(t *testing.T) {
	apptID := uuid.New()
	repo := &apptRepo{appt: &booking.Appointment{
		ID:     apptID,
		Status: booking.StatusConfirmed,
	}}
	sender := &recordingSender{err: errors.New("mail API unreachable")}
	handler := notify.NewConfirmationHandler(repo, sender, "bookings@clinic.example")

	err := handler.ProcessTask(context.Background(), confirmationTask(t, notify.ConfirmationPayload{
		AppointmentID: apptID,
		CustomerEmail: "jane@example.com",
	}))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestConfirmationHandler_BadPayloadSkipsRetry(t *testing.T) {
	handler := notify.NewConfirmationHandler(&apptRepo{}, &recordingSender{}, "bookings@clinic.example")

	task := asynq.NewTask(notify.TypeAppointmentConfirmation, []byte("{not json"))
	err := handler.ProcessTask(context.Background(), task)

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestFixedRetryDelay(t *testing.T) {
	fn := notify.FixedRetryDelay(60 * time.Second)

	task := asynq.NewTask(notify.TypeAppointmentConfirmation, nil)
	for _, attempt := range []int{1, 2, 3} {
		assert.Equal(t, 60*time.Second, fn(attempt, errors.New("boom"), task))
	}
}

func TestConfirmationPayload_RoundTrip(t *testing.T) {
	payload := notify.ConfirmationPayload{
		AppointmentID:    uuid.New(),
		CustomerEmail:    "jane@example.com",
		ServiceName:      "Dental Cleaning",
		ProfessionalName: "Dr. Lena Fischer",
		Specialization:   "Dentistry",
		ScheduledAt:      time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
	}

	task, err := notify.NewConfirmationTask(payload)
	require.NoError(t, err)
	assert.Equal(t, notify.TypeAppointmentConfirmation, task.Type())

	var got notify.ConfirmationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, payload.AppointmentID, got.AppointmentID)
	assert.True(t, payload.ScheduledAt.Equal(got.ScheduledAt))
}
