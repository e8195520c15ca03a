package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-scheduling/internal/db"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/logger"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/routes"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("development", "info")
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	locker, closeLocker := newLocker(ctx, cfg, log)
	defer closeLocker()

	metrics.Register()

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	deps := ucAppointment.Deps{
		Repo:   infraRepo.NewAppointmentGormRepository(db),
		Locker: locker,
		Clock:  timezone.SystemClock{},
		Audit:  dispatcher,
		Log:    log,
		Policy: ucAppointment.Policy{
			LeadTime:            cfg.Booking.LeadTime(),
			StrictOverlap:       cfg.Booking.StrictOverlap,
			PublicStrictOverlap: cfg.Booking.PublicStrictOverlap,
		},
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Appointment: deps,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLocker usa Redis quando configurado; sem Redis, o lock fica no processo
// e só serializa reservas de uma única instância.
func newLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.Locker, func()) {
	client, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	if client == nil {
		log.Warn().Msg("REDIS_ADDR not set, using in-process booking lock")
		return lock.NewLocalLocker(), func() {}
	}

	return lock.NewRedisLocker(client, cfg.Booking.LockTTL(), cfg.Booking.LockWait(), log),
		func() { _ = client.Close() }
}
