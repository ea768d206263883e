package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ClinicBookingService/internal/api"
	approveProviderHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/approve_provider"
	createReservationHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/get_available_slots"
	getPatientReservationsHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/get_patient_reservations"
	getProviderHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/get_provider"
	getReservationHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/get_reservation"
	paymentNotifyHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/payment_notify"
	requestPaymentHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/request_payment"
	submitEnrollmentHandler "github.com/m04kA/SMC-ClinicBookingService/internal/api/handlers/submit_enrollment"
	"github.com/m04kA/SMC-ClinicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBookingService/internal/config"
	enrollmentRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/enrollment"
	"github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/migrations"
	providerRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/provider"
	reservationRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ClinicBookingService/internal/integrations/payfast"
	providersService "github.com/m04kA/SMC-ClinicBookingService/internal/service/providers"
	reservationsService "github.com/m04kA/SMC-ClinicBookingService/internal/service/reservations"
	confirmPaymentUC "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/confirm_payment"
	createReservationUC "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/get_available_slots"
	requestPaymentUC "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/request_payment"
	submitEnrollmentUC "github.com/m04kA/SMC-ClinicBookingService/internal/usecase/submit_enrollment"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/types"
)

// eventPublisher общий интерфейс для RabbitMQ и заглушки
type eventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")
	return cmd
}

func serve(ctx context.Context, configPath string, migrateUp bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting clinic booking service %s...", Version)
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime.Std())

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateUp {
		applied, err := migrations.Up(ctx, db, log)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", applied)
	}

	// Репозитории работают через обёртку с метриками или напрямую
	var (
		executor  dbmetrics.DBExecutor
		txManager transactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txManager = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txManager = simpletxmanager.NewTransactionManager(db)
	}

	scheduleRepository := scheduleRepo.NewRepository(executor)
	reservationRepository := reservationRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	enrollmentRepository := enrollmentRepo.NewRepository(executor)
	providerRepository := providerRepo.NewCachedRepository(
		providerRepo.NewRepository(executor),
		cfg.Booking.ProviderCacheTTL.Std(),
	)

	// Интеграции
	gateway := payfast.NewClient(payfast.Config{
		MerchantID:  cfg.PayFast.MerchantID,
		MerchantKey: cfg.PayFast.MerchantKey,
		Passphrase:  cfg.PayFast.Passphrase,
		ProcessURL:  cfg.PayFast.ProcessURL,
		ReturnURL:   cfg.PayFast.ReturnURL,
		CancelURL:   cfg.PayFast.CancelURL,
		NotifyURL:   cfg.PayFast.NotifyURL,
		Timeout:     cfg.PayFast.Timeout.Std(),
	}, log)
	log.Info("Payment gateway client initialized (process_url=%s, verify_signature=%t)",
		cfg.PayFast.ProcessURL, cfg.PayFast.VerifySignature)

	var confirmationMailer confirmPaymentUC.Mailer = mailer.Nop{}
	if cfg.Mail.Enabled {
		confirmationMailer = mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		log.Info("Confirmation e-mails enabled (smtp=%s:%d)", cfg.Mail.Host, cfg.Mail.Port)
	}

	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			return fmt.Errorf("connect to event broker: %w", err)
		}
		publisher = amqpPublisher
		log.Info("Reservation events enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, providerRepository, userRepository, log)
	providersSvc := providersService.NewService(providerRepository, userRepository, enrollmentRepository, txManager, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(scheduleRepository, reservationRepository, log)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		providerRepository,
		types.Cents(cfg.Booking.Fee),
		metricsCollector,
		log,
	)
	requestPaymentUseCase := requestPaymentUC.NewUseCase(
		reservationRepository,
		userRepository,
		gateway,
		metricsCollector,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		reservationRepository,
		userRepository,
		providerRepository,
		confirmationMailer,
		publisher,
		metricsCollector,
		confirmPaymentUC.Options{
			VerifySignature: cfg.PayFast.VerifySignature,
			Passphrase:      gateway.Passphrase(),
		},
		log,
	)
	submitEnrollmentUseCase := submitEnrollmentUC.NewUseCase(enrollmentRepository, providerRepository, txManager, log)

	// Middleware
	routerOpts := api.Options{
		ServiceName: cfg.Metrics.ServiceName,
		MetricsPath: cfg.Metrics.Path,
		Auth:        middleware.Auth(middleware.NewTokenParser(cfg.Auth.JWTSecret, cfg.Auth.Issuer), log),
	}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
	}
	if cfg.RateLimit.Enabled {
		routerOpts.RateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		})
		log.Info("Rate limit on public routes: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	router := api.NewRouter(api.Handlers{
		GetAvailableSlots:      getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		GetProvider:            getProviderHandler.NewHandler(providersSvc, log),
		PaymentNotify:          paymentNotifyHandler.NewHandler(confirmPaymentUseCase, log),
		CreateReservation:      createReservationHandler.NewHandler(createReservationUseCase, log),
		RequestPayment:         requestPaymentHandler.NewHandler(requestPaymentUseCase, log),
		GetReservation:         getReservationHandler.NewHandler(reservationsSvc, log),
		GetPatientReservations: getPatientReservationsHandler.NewHandler(reservationsSvc, log),
		SubmitEnrollment:       submitEnrollmentHandler.NewHandler(submitEnrollmentUseCase, log),
		ApproveProvider:        approveProviderHandler.NewHandler(providersSvc, log),
	}, routerOpts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// Проверка на этапе компиляции, что интеграции подходят под контракты use case
var (
	_ requestPaymentUC.PaymentGateway = (*payfast.Client)(nil)
	_ confirmPaymentUC.Mailer         = (*mailer.Mailer)(nil)
	_ confirmPaymentUC.EventPublisher = (*events.Publisher)(nil)
)
