package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The exclusion constraint is the storage-layer backstop for the booking
// conflict rule: two non-cancelled rows for the same professional violate it
// exactly when their scheduled_at values are at most one hour apart (closed
// ±30min ranges overlap iff the gap is <= 1h, boundary included).
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS services (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		description text NOT NULL DEFAULT '',
		duration_minutes integer NOT NULL CHECK (duration_minutes > 0),
		price numeric(10,2) NOT NULL CHECK (price >= 0),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS health_professionals (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		specialization text NOT NULL DEFAULT '',
		email text NOT NULL,
		phone text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id uuid PRIMARY KEY,
		service_id uuid NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		health_professional_id uuid NOT NULL REFERENCES health_professionals(id) ON DELETE CASCADE,
		customer_email text NOT NULL,
		scheduled_at timestamptz NOT NULL,
		status text NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
		notes text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT appointments_no_window_overlap EXCLUDE USING gist (
			health_professional_id WITH =,
			tstzrange(scheduled_at - interval '30 minutes', scheduled_at + interval '30 minutes', '[]') WITH &&
		) WHERE (status <> 'cancelled')
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_scheduled_at ON appointments (scheduled_at)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_customer_email ON appointments (customer_email)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_professional_scheduled ON appointments (health_professional_id, scheduled_at)`,
}

// EnsureSchema applies the idempotent DDL. The seed command runs it before
// inserting the catalog; servers expect the schema to already exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
