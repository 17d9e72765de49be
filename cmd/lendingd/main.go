package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/usecase"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/service"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/infrastructure/config"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/infrastructure/messaging"
	pgRepo "github.com/cedarmondenterprises/patapesa-loan-sub000/internal/infrastructure/persistence/postgres"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/presentation/rest"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/auth"
	pkgkafka "github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/kafka"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/observability"
	pkgpostgres "github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration; .env is optional and only used in development.
	_ = godotenv.Load() //nolint:errcheck
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting lending engine", "http_port", cfg.HTTPPort)

	// Initialize tracing. Failure is non-fatal; the service runs untraced.
	if cfg.Tracing.Endpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(ctx) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://"+cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	borrowerRepo := pgRepo.NewBorrowerRepo(pool)
	productRepo := pgRepo.NewProductRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	txRepo := pgRepo.NewTransactionRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	scorer := service.NewCreditScoringService()

	// Wire use cases.
	registerUC := usecase.NewRegisterBorrowerUseCase(borrowerRepo, publisher)
	reviewKYCUC := usecase.NewReviewKYCUseCase(borrowerRepo, publisher)
	getBorrowerUC := usecase.NewGetBorrowerUseCase(borrowerRepo)
	listProductsUC := usecase.NewListProductsUseCase(productRepo)
	applyUC := usecase.NewApplyForLoanUseCase(borrowerRepo, productRepo, loanRepo, scorer, publisher)
	approveUC := usecase.NewApproveLoanUseCase(loanRepo, publisher)
	rejectUC := usecase.NewRejectLoanUseCase(loanRepo, publisher)
	cancelUC := usecase.NewCancelLoanUseCase(loanRepo, publisher)
	disburseUC := usecase.NewDisburseLoanUseCase(loanRepo, publisher)
	repayUC := usecase.NewProcessRepaymentUseCase(loanRepo, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	scheduleUC := usecase.NewGetRepaymentScheduleUseCase(loanRepo)
	borrowerLoansUC := usecase.NewListBorrowerLoansUseCase(loanRepo)
	transactionsUC := usecase.NewListTransactionsUseCase(loanRepo, txRepo)
	defaultUC := usecase.NewMarkLoanDefaultedUseCase(loanRepo, publisher)
	writeOffUC := usecase.NewWriteOffLoanUseCase(loanRepo)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Borrowers: rest.NewBorrowerHandler(registerUC, reviewKYCUC, getBorrowerUC, borrowerLoansUC),
		Loans: rest.NewLoanHandler(
			applyUC, approveUC, rejectUC, cancelUC, disburseUC, repayUC,
			getLoanUC, scheduleUC, transactionsUC, defaultUC, writeOffUC,
		),
		Products:       rest.NewProductHandler(listProductsUC),
		Health:         rest.NewHealthHandler(pool, logger),
		MetricsHandler: metricsHandler,
		JWTService:     jwtSvc,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending engine stopped")
}
