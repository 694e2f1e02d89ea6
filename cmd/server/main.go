package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dataquality/internal/config"
	"dataquality/internal/email/noop"
	"dataquality/internal/email/ses"
	"dataquality/internal/handler"
	"dataquality/internal/port"
	"dataquality/internal/repository/postgres"
	"dataquality/internal/router"
	"dataquality/internal/service"
	s3storage "dataquality/internal/storage/s3"
	"dataquality/internal/validator/concession"
)

// @title                      Data Quality Gate API
// @version                    1.0
// @description                Concurrent rule validation of concession records before ingestion.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	clientRepo := postgres.NewAPIClientRepo(db)
	runRepo := postgres.NewValidationRunRepo(db)
	batchRepo := postgres.NewBatchRepo(db)
	regionRepo := postgres.NewRegionRepo(db)
	duplicateFinder := postgres.NewDuplicateFinderRepo(db)

	// Region master is loaded once; a restart picks up changes.
	regions, err := regionRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load region master: %w", err)
	}
	log.Printf("loaded %d regions", len(regions))

	// Initialize rules
	registry, err := concession.NewRegistry(concession.Dependencies{
		SentimentMin: cfg.Validation.SentimentMin,
		SentimentMax: cfg.Validation.SentimentMax,
		Regions:      concession.NewRegionLookup(regions),
		Duplicates:   duplicateFinder,
	})
	if err != nil {
		return fmt.Errorf("failed to build rule registry: %w", err)
	}
	validators, err := registry.Resolve(cfg.Validation.Rules)
	if err != nil {
		return fmt.Errorf("invalid DQ_VALIDATION_RULES: %w", err)
	}

	// Initialize storage
	store, err := s3storage.NewBatchStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var emailSender port.EmailSender
	switch {
	case cfg.Email.Provider == "ses" && cfg.Email.StewardAddress != "":
		emailSender, err = ses.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.StewardAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES: %w", err)
		}
	case cfg.Email.Provider == "ses":
		log.Printf("email provider is ses but DQ_EMAIL_STEWARD_ADDRESS is empty; batch reports are logged only")
		emailSender = noop.NewNoopSender()
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(clientRepo, cfg.JWT)
	validationSvc, err := service.NewValidationService(validators, runRepo, cfg.Validation.RecordTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize validation service: %w", err)
	}
	batchSvc := service.NewBatchService(batchRepo, store, &cfg.S3)
	worker := service.NewBatchQueueWorker(batchRepo, store, validationSvc, emailSender, service.BatchQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
		MaxRows:      cfg.Queue.MaxRows,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		StaleAfter:   cfg.Queue.StaleAfter,
	})

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:   handler.NewAuthHandler(authSvc),
		Record: handler.NewRecordHandler(validationSvc),
		Run:    handler.NewRunHandler(validationSvc),
		Batch:  handler.NewBatchHandler(batchSvc),
		Health: handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%d rules active)", cfg.Server.Port, len(validators))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	wg.Wait()
	return nil
}
