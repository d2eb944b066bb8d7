package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/carewell/clinic-booking/internal/booking"
	"github.com/carewell/clinic-booking/internal/config"
	"github.com/carewell/clinic-booking/internal/db"
	"github.com/carewell/clinic-booking/internal/logging"
	"github.com/carewell/clinic-booking/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	logging.Init("notify-worker", cfg.Env)
	log.Info().
		Str("env", cfg.Env).
		Int("max_retry", cfg.NotifyMaxRetry).
		Dur("retry_wait", cfg.NotifyRetryWait).
		Msg("notify-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	var sender notify.EmailSender
	if cfg.MailAPIURL != "" {
		mailer, err := notify.NewHTTPMailer(cfg.MailAPIURL, cfg.MailAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("mailer setup error")
		}
		sender = mailer
	} else {
		log.Warn().Msg("MAIL_API_URL not set, emails will only be logged")
		sender = notify.LogSender{}
	}

	repo := booking.NewPgRepository(pgPool)
	handler := notify.NewConfirmationHandler(repo, sender, cfg.MailFrom)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		},
		asynq.Config{
			Concurrency:    cfg.NotifyWorkers,
			RetryDelayFunc: notify.FixedRetryDelay(cfg.NotifyRetryWait),
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(notify.TypeAppointmentConfirmation, handler)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("asynq server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down notify-worker")
	srv.Shutdown()
}
