package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"broadcast-scheduler/internal/platform/config"
	"broadcast-scheduler/internal/platform/logger"
	"broadcast-scheduler/internal/platform/metrics"
	"broadcast-scheduler/internal/schedule"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	logFile := config.GetEnv("LOG_FILE", "")
	zone := config.GetEnv("SCHEDULE_TIMEZONE", "Local")
	coverageDays := config.GetEnvInt("COVERAGE_DAYS", schedule.DefaultCoverageDays)
	autoFill := config.GetEnvBool("AUTO_FILL_ON_START", false)

	out, closer := logger.Output(logFile)
	defer closer.Close()
	log := logger.NewWithWriter(out, logLevel, logFormat)

	loc, err := config.LoadLocation(zone)
	if err != nil {
		log.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	repo := schedule.NewInMemoryRepository()
	svc := schedule.NewService(repo, schedule.Options{
		Location:       loc,
		FillerTitle:    config.GetEnv("FILLER_TITLE", schedule.DefaultFillerTitle),
		FillerPlaylist: config.GetEnv("FILLER_PLAYLIST", ""),
		MaxSpanDays:    config.GetEnvInt("MAX_SPAN_DAYS", schedule.DefaultMaxSpanDays),
	})
	met := metrics.New()
	h := schedule.NewHandler(svc, log, met)

	if autoFill {
		today := svc.DateOf(time.Now())
		created := svc.EnsureCoverage(today, coverageDays)
		met.AddFillerGenerated(created)
		log.Info("initial coverage ensured",
			"start", today.String(),
			"days", coverageDays,
			"created", created,
		)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met, "/metrics"))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetStoreSize(repo.DayCount(), repo.ItemCount()) }).ServeHTTP(w, r)
	})
	h.Routes(r)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"timezone", loc.String(),
		"coverage_days", coverageDays,
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
