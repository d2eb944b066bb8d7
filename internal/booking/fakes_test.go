package booking_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/clinic-booking/internal/booking"
	redisclient "github.com/carewell/clinic-booking/internal/redis"
)

// fakeRepo is an in-memory Repository with the same window and transition
// semantics as the Postgres implementation.
type fakeRepo struct {
	mu            sync.Mutex
	services      map[uuid.UUID]booking.Service
	professionals map[uuid.UUID]booking.HealthProfessional
	appointments  map[uuid.UUID]booking.Appointment

	createErr error // injected failure for CreateIfAvailable
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:      make(map[uuid.UUID]booking.Service),
		professionals: make(map[uuid.UUID]booking.HealthProfessional),
		appointments:  make(map[uuid.UUID]booking.Appointment),
	}
}

func (r *fakeRepo) addService(s booking.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *fakeRepo) addProfessional(p booking.HealthProfessional) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professionals[p.ID] = p
}

func (r *fakeRepo) addAppointment(a booking.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = a
}

func (r *fakeRepo) countForProfessional(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.appointments {
		if a.HealthProfessionalID == id {
			n++
		}
	}
	return n
}

func (r *fakeRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*booking.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, booking.ErrServiceNotFound
	}
	return &s, nil
}

func (r *fakeRepo) ListServices(ctx context.Context) ([]booking.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []booking.Service
	for _, s := range r.services {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeRepo) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*booking.HealthProfessional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[id]
	if !ok {
		return nil, booking.ErrProfessionalNotFound
	}
	return &p, nil
}

func (r *fakeRepo) ListProfessionals(ctx context.Context) ([]booking.HealthProfessional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []booking.HealthProfessional
	for _, p := range r.professionals {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeRepo) HasConflictInWindow(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasConflictLocked(professionalID, from, to), nil
}

func (r *fakeRepo) hasConflictLocked(professionalID uuid.UUID, from, to time.Time) bool {
	for _, a := range r.appointments {
		if a.HealthProfessionalID != professionalID || a.Status == booking.StatusCancelled {
			continue
		}
		if !a.ScheduledAt.Before(from) && !a.ScheduledAt.After(to) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateIfAvailable(ctx context.Context, appt booking.NewAppointment) (*booking.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	from, to := booking.ConflictWindow(appt.ScheduledAt)
	if r.hasConflictLocked(appt.HealthProfessionalID, from, to) {
		return nil, booking.ErrTimeSlotTaken
	}

	now := time.Now()
	created := booking.Appointment{
		ID:                   uuid.New(),
		ServiceID:            appt.ServiceID,
		HealthProfessionalID: appt.HealthProfessionalID,
		CustomerEmail:        appt.CustomerEmail,
		ScheduledAt:          appt.ScheduledAt,
		Status:               booking.StatusPending,
		Notes:                appt.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	r.appointments[created.ID] = created
	return &created, nil
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, booking.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeRepo) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*booking.AppointmentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, booking.ErrAppointmentNotFound
	}
	return r.detailLocked(a), nil
}

func (r *fakeRepo) detailLocked(a booking.Appointment) *booking.AppointmentDetail {
	svc := r.services[a.ServiceID]
	prof := r.professionals[a.HealthProfessionalID]
	return &booking.AppointmentDetail{
		Appointment:  a,
		Service:      &svc,
		Professional: &prof,
	}
}

func (r *fakeRepo) ListByCustomerEmail(ctx context.Context, email string) ([]booking.AppointmentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []booking.AppointmentDetail
	for _, a := range r.appointments {
		if a.CustomerEmail == email {
			result = append(result, *r.detailLocked(a))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledAt.After(result[j].ScheduledAt)
	})
	return result, nil
}

func (r *fakeRepo) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) (*booking.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return nil, booking.ErrAppointmentNotFound
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	r.appointments[id] = a
	return &a, nil
}

func (r *fakeRepo) CancelAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return false, nil
	}
	a.Status = booking.StatusCancelled
	a.UpdatedAt = time.Now()
	r.appointments[id] = a
	return true, nil
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return false, nil
	}
	delete(r.appointments, id)
	return true, nil
}

// fakeLocker runs the critical section inline, or refuses the lock.
type fakeLocker struct {
	refuse bool
	calls  int
}

func (l *fakeLocker) WithProfessionalLock(ctx context.Context, professionalID uuid.UUID, fn func(ctx context.Context) error) error {
	l.calls++
	if l.refuse {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

// fakeDispatcher records enqueued confirmations.
type fakeDispatcher struct {
	mu       sync.Mutex
	enqueued []*booking.AppointmentDetail
	err      error
}

func (d *fakeDispatcher) EnqueueConfirmation(ctx context.Context, detail *booking.AppointmentDetail) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.enqueued = append(d.enqueued, detail)
	return nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.enqueued)
}
