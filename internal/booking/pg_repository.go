package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanService(row pgx.Row) (*Service, error) {
	var s Service

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return &s, nil
}

func scanProfessional(row pgx.Row) (*HealthProfessional, error) {
	var p HealthProfessional
	var phone *string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Specialization,
		&p.Email,
		&phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	p.Phone = phone
	return &p, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var notes *string

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.HealthProfessionalID,
		&a.CustomerEmail,
		&a.ScheduledAt,
		&a.Status,
		&notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Notes = notes
	return &a, nil
}

const serviceColumns = `id, name, description, duration_minutes, price::text, created_at, updated_at`
const professionalColumns = `id, name, specialization, email, phone, created_at, updated_at`
const appointmentColumns = `id, service_id, health_professional_id, customer_email, scheduled_at, status, notes, created_at, updated_at`

// Interface methods

func (r *PgRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = $1
	`, id)
	return scanService(row)
}

func (r *PgRepository) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	return result, rows.Err()
}

func (r *PgRepository) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*HealthProfessional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+professionalColumns+`
		FROM health_professionals
		WHERE id = $1
	`, id)
	return scanProfessional(row)
}

func (r *PgRepository) ListProfessionals(ctx context.Context) ([]HealthProfessional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalColumns+`
		FROM health_professionals
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []HealthProfessional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	return result, rows.Err()
}

func (r *PgRepository) HasConflictInWindow(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (bool, error) {
	var conflict bool

	// BETWEEN keeps both bounds inclusive, matching the closed window rule.
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE health_professional_id = $1
			  AND status <> 'cancelled'
			  AND scheduled_at BETWEEN $2 AND $3
		)
	`, professionalID, from, to).Scan(&conflict)
	if err != nil {
		return false, fmt.Errorf("conflict window query: %w", err)
	}

	return conflict, nil
}

func (r *PgRepository) CreateIfAvailable(ctx context.Context, appt NewAppointment) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	from, to := ConflictWindow(appt.ScheduledAt)

	var conflict bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE health_professional_id = $1
			  AND status <> 'cancelled'
			  AND scheduled_at BETWEEN $2 AND $3
		)
	`, appt.HealthProfessionalID, from, to).Scan(&conflict)
	if err != nil {
		return nil, fmt.Errorf("conflict re-check: %w", err)
	}
	if conflict {
		return nil, ErrTimeSlotTaken
	}

	id := uuid.New()

	row := tx.QueryRow(ctx, `
		INSERT INTO appointments (id, service_id, health_professional_id, customer_email, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, now(), now())
		RETURNING `+appointmentColumns+`
	`, id, appt.ServiceID, appt.HealthProfessionalID, appt.CustomerEmail, appt.ScheduledAt, appt.Notes)

	created, err := scanAppointment(row)
	if err != nil {
		return nil, mapInsertError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapInsertError(err)
	}

	return created, nil
}

// mapInsertError turns storage-layer constraint failures into the booking
// error taxonomy: FK violations behave like missing references, exclusion
// violations like a lost conflict race.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23503": // foreign_key_violation
		if pgErr.ConstraintName == "appointments_service_id_fkey" {
			return ErrServiceNotFound
		}
		return ErrProfessionalNotFound
	case "23P01": // exclusion_violation
		return ErrTimeSlotTaken
	default:
		return err
	}
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrAppointmentNotFound
	}

	return scanDetail(rows)
}

func (r *PgRepository) ListByCustomerEmail(ctx context.Context, email string) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE a.customer_email = $1
		ORDER BY a.scheduled_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AppointmentDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	return result, rows.Err()
}

const detailQuery = `
	SELECT a.id, a.service_id, a.health_professional_id, a.customer_email, a.scheduled_at, a.status, a.notes, a.created_at, a.updated_at,
	       s.id, s.name, s.description, s.duration_minutes, s.price::text, s.created_at, s.updated_at,
	       p.id, p.name, p.specialization, p.email, p.phone, p.created_at, p.updated_at
	FROM appointments a
	JOIN services s ON s.id = a.service_id
	JOIN health_professionals p ON p.id = a.health_professional_id`

func scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var d AppointmentDetail
	var s Service
	var p HealthProfessional
	var notes, phone *string

	err := row.Scan(
		&d.ID,
		&d.ServiceID,
		&d.HealthProfessionalID,
		&d.CustomerEmail,
		&d.ScheduledAt,
		&d.Status,
		&notes,
		&d.CreatedAt,
		&d.UpdatedAt,
		&s.ID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.CreatedAt,
		&s.UpdatedAt,
		&p.ID,
		&p.Name,
		&p.Specialization,
		&p.Email,
		&phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	d.Notes = notes
	p.Phone = phone
	d.Service = &s
	d.Professional = &p
	return &d, nil
}

func (r *PgRepository) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING `+appointmentColumns+`
	`, id, to, from)

	return scanAppointment(row)
}

func (r *PgRepository) CancelAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
		    updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("cancel appointment: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
