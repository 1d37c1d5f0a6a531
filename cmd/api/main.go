package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/libraryhall/hallbook-api/internal/config"
	"github.com/libraryhall/hallbook-api/internal/domain/booking"
	"github.com/libraryhall/hallbook-api/internal/domain/calendar"
	"github.com/libraryhall/hallbook-api/internal/domain/shell"
	"github.com/libraryhall/hallbook-api/internal/domain/submission"
	"github.com/libraryhall/hallbook-api/internal/pkg/database"
	"github.com/libraryhall/hallbook-api/internal/pkg/imaging"
	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
	"github.com/libraryhall/hallbook-api/internal/pkg/metrics"
	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("hall", cfg.HallName).
		Msg("Starting Hallbook API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	m := metrics.New()

	// ---------- Booking catalog ----------
	catalog, err := booking.OpenRepository(db, cfg.BookingsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load booking catalog")
	}
	bookingService := booking.NewService(catalog)
	calendarService := calendar.NewService(bookingService)

	// ---------- Preview storage ----------
	previewStorage, mediaDir, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create preview storage")
	}

	// ---------- Booking forms ----------
	journal := submission.MultiJournal{submission.LogJournal{}}
	if redis != nil {
		journal = append(journal, submission.NewRedisJournal(redis))
	}

	formService := submission.NewService(submission.Config{
		SubmitDelay:    cfg.SubmitDelay,
		ResetDelay:     cfg.ResetDelay,
		MaxUploadBytes: cfg.MaxUploadBytes,
		IdleTimeout:    cfg.FormIdleTimeout,
	}, submission.Deps{
		Previews: submission.NewStoragePreviews(previewStorage, imaging.NewProcessor(imaging.DefaultConfig())),
		Journal:  journal,
		Observer: m,
	})
	go formService.RunSweeper(ctx, sweepInterval)

	// ---------- Router ----------
	r := newRouter(routerDeps{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        m,
		MediaDir:       mediaDir,
		MediaURL:       cfg.StoragePublicURL,
		Shell:          shell.NewHandler(cfg.HallName),
		Bookings:       booking.NewHandler(bookingService),
		Calendar:       calendar.NewHandler(calendarService),
		Forms:          submission.NewHandler(formService, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Release previews still held by mounted forms
	formService.Close(shutdownCtx)

	log.Info().Msg("Server exited properly")
}

// newStorage builds the preview backend. mediaDir is set when files should be served locally.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, string, error) {
	if cfg.StorageDriver == config.StorageS3 {
		s, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Preview storage: S3")
		return s, "", nil
	}

	if cfg.StorageDriver != config.StorageLocal && cfg.StorageDriver != "" {
		log.Warn().Str("driver", cfg.StorageDriver).Msg("Unknown storage driver, using local")
	}

	s, err := storage.NewLocalStorage(cfg.StorageLocalPath, cfg.StoragePublicURL)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("path", cfg.StorageLocalPath).Msg("Preview storage: local")
	return s, s.BasePath(), nil
}
