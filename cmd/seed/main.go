package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/carewell/clinic-booking/internal/db"
	"github.com/carewell/clinic-booking/internal/logging"
)

type seedService struct {
	name            string
	description     string
	durationMinutes int
	price           string
}

var services = []seedService{
	{"General Consultation", "Comprehensive medical evaluation and health assessment with a general practitioner", 30, "75.00"},
	{"Cardiology Consultation", "Specialized cardiovascular examination including heart health assessment and ECG", 45, "150.00"},
	{"Dental Checkup & Cleaning", "Routine dental examination, professional cleaning, and oral health assessment", 60, "95.00"},
	{"Pediatric Consultation", "Complete health assessment for children including growth and development monitoring", 40, "85.00"},
	{"Physiotherapy Session", "Personalized physical therapy treatment for injury recovery and pain management", 50, "90.00"},
	{"Dermatology Consultation", "Skin condition evaluation, diagnosis, and treatment planning", 30, "120.00"},
	{"Mental Health Counseling", "Professional psychological counseling and mental wellness support", 60, "110.00"},
	{"Nutrition Consultation", "Personalized dietary assessment and nutrition planning", 45, "80.00"},
	{"Ophthalmology Exam", "Complete eye examination including vision testing and eye health screening", 30, "100.00"},
	{"Orthopedic Consultation", "Musculoskeletal evaluation for bone, joint, and muscle conditions", 40, "140.00"},
}

var specializations = []string{
	"General Practice",
	"Cardiology",
	"Dentistry",
	"Pediatrics",
	"Physiotherapy",
	"Dermatology",
	"Psychology",
	"Nutrition",
	"Ophthalmology",
	"Orthopedics",
}

func main() {
	logging.Init("seed", os.Getenv("APP_ENV"))
	log.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}
	log.Info().Msg("schema applied")

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedServices(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("seed services")
	}
	if err := seedProfessionals(context.Background(), pool, 20); err != nil {
		log.Fatal().Err(err).Msg("seed health professionals")
	}

	log.Info().Msg("seed complete")
}

func seedServices(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Int("count", len(services)).Msg("seeding services")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range services {
		_, err := tx.Exec(ctx, `
			INSERT INTO services (id, name, description, duration_minutes, price, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, uuid.New(), s.name, s.description, s.durationMinutes, s.price)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Info().Msg("services seeded")
	return nil
}

func seedProfessionals(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Info().Int("count", count).Msg("seeding health professionals")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Dr. %s", gofakeit.Name())
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]
		email := fmt.Sprintf("%s@clinic.example", strings.ToLower(gofakeit.LetterN(8)))
		phone := gofakeit.Phone()

		_, err := tx.Exec(ctx, `
			INSERT INTO health_professionals (id, name, specialization, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, uuid.New(), name, spec, email, phone)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Info().Msg("health professionals seeded")
	return nil
}
