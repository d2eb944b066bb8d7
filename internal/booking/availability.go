package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConflictWindowRadius is how far, on each side of a candidate time, another
// non-cancelled appointment for the same professional blocks booking.
const ConflictWindowRadius = time.Hour

// ConflictWindow returns the closed interval [t-1h, t+1h]. An appointment
// scheduled exactly one hour away still conflicts.
func ConflictWindow(t time.Time) (from, to time.Time) {
	return t.Add(-ConflictWindowRadius), t.Add(ConflictWindowRadius)
}

// AvailabilityChecker decides whether a professional can take a candidate
// time. It does not validate that the professional exists; it only queries
// appointments by id.
type AvailabilityChecker struct {
	repo Repository
}

func NewAvailabilityChecker(repo Repository) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo}
}

// IsAvailable is true iff no non-cancelled appointment for the professional
// falls within the conflict window around candidateTime. Read-only.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, professionalID uuid.UUID, candidateTime time.Time) (bool, error) {
	from, to := ConflictWindow(candidateTime)
	conflict, err := c.repo.HasConflictInWindow(ctx, professionalID, from, to)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
