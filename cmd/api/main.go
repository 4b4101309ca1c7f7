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

	"github.com/attendly/attendly/internal/app"
	"github.com/attendly/attendly/internal/clock"
	"github.com/attendly/attendly/internal/config"
	"github.com/attendly/attendly/internal/storage/postgres"
	"github.com/attendly/attendly/internal/ticket"
	transporthttp "github.com/attendly/attendly/internal/transport/http"
	"github.com/attendly/attendly/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect to db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Error("db ping", "error", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	codec, err := ticket.NewCodec(cfg.TicketSecret)
	if err != nil {
		logger.Error("build ticket codec", "error", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	bookingRepo := postgres.NewBookingRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	bookingSvc := app.NewBookingService(bookingRepo, eventRepo, codec, clk)
	checkInSvc := app.NewCheckInService(bookingRepo, eventRepo, codec, clk)
	participantSvc := app.NewParticipantService(bookingRepo, eventRepo, bookingSvc)
	analyticsSvc := app.NewAnalyticsService(analyticsRepo, eventRepo, clk)
	ticketSvc := app.NewTicketService(bookingRepo, eventRepo, codec, clk)

	router := transporthttp.NewRouter(transporthttp.Services{
		Bookings:     bookingSvc,
		CheckIns:     checkInSvc,
		Participants: participantSvc,
		Analytics:    analyticsSvc,
		Tickets:      ticketSvc,
		Events:       eventRepo,
		Auth:         transporthttp.NewAuthenticator(cfg.JWTSecret),
	})

	handler := transporthttp.RequestLogger(
		transporthttp.CORS(cfg.CORSOrigins,
			transporthttp.StorageTimeout(cfg.StorageTimeout, router)),
		logger,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
