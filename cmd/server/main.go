package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"guildcalendar/config"
	_ "guildcalendar/docs"
	"guildcalendar/internal/adapters/auth"
	"guildcalendar/internal/adapters/email"
	"guildcalendar/internal/adapters/session"
	delivery "guildcalendar/internal/delivery/http"
	"guildcalendar/internal/delivery/http/controllers"
	"guildcalendar/internal/delivery/http/middleware"
	"guildcalendar/internal/metrics"
	"guildcalendar/internal/owner"
	"guildcalendar/internal/repository/async"
	"guildcalendar/internal/repository/postgres"
	"guildcalendar/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title Guild Calendar Ops API
// @version 1.0
// @description Operator API for the guild calendar.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	characters := postgres.NewCharacterCache(db)
	if err := characters.Load(ctx); err != nil {
		return err
	}

	m := metrics.New()
	repo := postgres.NewCalendarRepository(db)
	worker := async.NewWorker(repo, cfg.Calendar.StorageQueueSize, cfg.Calendar.StorageTimeout, m, logger.With("component", "storage"))

	// Loading may already queue writes (orphan invites), so the worker runs first.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	abort := func(err error) error {
		worker.Close()
		_ = g.Wait()
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger.With("component", "mailer"))
	if err != nil {
		return abort(err)
	}
	mail := services.NewMailQueue(mailer, email.NewTemplateRenderer(), characters, logger.With("component", "mail"))
	sessions := session.NewRegistry(characters, logger.With("component", "sessions"))

	calendar := services.NewCalendarService(repo, worker, characters, m.InstrumentSessions(sessions), mail, logger.With("component", "calendar"))
	if err := calendar.LoadFromDB(ctx); err != nil {
		return abort(err)
	}

	loop, err := owner.New(calendar, owner.Config{
		TickInterval:  cfg.Calendar.TickInterval,
		PurgeSchedule: cfg.Calendar.PurgeSchedule,
		Retention:     cfg.Calendar.EventRetention,
	}, m, logger.With("component", "owner"))
	if err != nil {
		return abort(err)
	}

	calendarController := controllers.NewCalendarController(logger, loop)
	router := delivery.NewRouter(calendarController, auth.NewJWTVerifier(cfg.JWTSecret), m.Handler(), logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		// The loop may still queue writes while draining, so the worker closes after it.
		defer worker.Close()
		return loop.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("server stopped", "pending_storage_jobs", worker.Pending())
	return err
}
