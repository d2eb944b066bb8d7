package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/carewell/clinic-booking/internal/booking"
)

// AsynqDispatcher implements booking.Dispatcher on top of an asynq client.
// Delivery retries belong to the queue, not to the booking transaction.
type AsynqDispatcher struct {
	client     *asynq.Client
	maxRetry   int
	retryDelay time.Duration
}

func NewAsynqDispatcher(client *asynq.Client, maxRetry int, retryDelay time.Duration) *AsynqDispatcher {
	return &AsynqDispatcher{
		client:     client,
		maxRetry:   maxRetry,
		retryDelay: retryDelay,
	}
}

func (d *AsynqDispatcher) EnqueueConfirmation(ctx context.Context, detail *booking.AppointmentDetail) error {
	task, err := NewConfirmationTask(ConfirmationPayload{
		AppointmentID:    detail.ID,
		CustomerEmail:    detail.CustomerEmail,
		ServiceName:      detail.Service.Name,
		ProfessionalName: detail.Professional.Name,
		Specialization:   detail.Professional.Specialization,
		ScheduledAt:      detail.ScheduledAt,
	})
	if err != nil {
		return fmt.Errorf("build confirmation task: %w", err)
	}

	_, err = d.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(d.maxRetry),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("enqueue confirmation task: %w", err)
	}

	return nil
}

// FixedRetryDelay gives every failed delivery attempt the same wait, the
// queue-wide policy for confirmation emails.
func FixedRetryDelay(delay time.Duration) asynq.RetryDelayFunc {
	return func(n int, err error, task *asynq.Task) time.Duration {
		return delay
	}
}
