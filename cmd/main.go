package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/confirm_booking"
	getBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/get_client_bookings"
	getOccupancyHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/get_occupancy"
	getSubscriptionHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/get_subscription"
	initiatePaymentHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/initiate_payment"
	negotiateBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/negotiate_booking"
	paymentWebhookHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/payment_webhook"
	rejectBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/reject_booking"
	requestBookingHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/request_booking"
	retryPaymentHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/retry_payment"
	runSweepHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/run_sweep"
	updateContractStatusHandler "github.com/adstack-mw/billboard-service/internal/api/handlers/update_contract_status"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	"github.com/adstack-mw/billboard-service/internal/config"
	billboardRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
	bookingRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/booking"
	contractRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/contract"
	paymentRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/payment"
	subscriptionRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/subscription"
	"github.com/adstack-mw/billboard-service/internal/integrations/notify"
	bookingsService "github.com/adstack-mw/billboard-service/internal/service/bookings"
	contractsService "github.com/adstack-mw/billboard-service/internal/service/contracts"
	paymentsService "github.com/adstack-mw/billboard-service/internal/service/payments"
	subscriptionsService "github.com/adstack-mw/billboard-service/internal/service/subscriptions"
	confirmBookingUC "github.com/adstack-mw/billboard-service/internal/usecase/confirm_booking"
	getOccupancyUC "github.com/adstack-mw/billboard-service/internal/usecase/get_occupancy"
	requestBookingUC "github.com/adstack-mw/billboard-service/internal/usecase/request_booking"
	runSweepUC "github.com/adstack-mw/billboard-service/internal/usecase/run_sweep"
	"github.com/adstack-mw/billboard-service/pkg/dbmetrics"
	"github.com/adstack-mw/billboard-service/pkg/logger"
	"github.com/adstack-mw/billboard-service/pkg/metrics"
	"github.com/adstack-mw/billboard-service/pkg/simpletxmanager"
	"github.com/adstack-mw/billboard-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting billboard-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем publisher уведомлений
	var warningPublisher runSweepUC.WarningPublisher
	if cfg.Notifications.Enabled {
		producer, err := notify.NewProducer(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer producer.Close()
		warningPublisher = producer
		log.Info("Notification producer connected (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		warningPublisher = notify.NewNopPublisher(log)
		log.Info("Notifications disabled, expiration warnings will be dropped")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		billboardRepository    *billboardRepo.Repository
		contractRepository     *contractRepo.Repository
		paymentRepository      *paymentRepo.Repository
		subscriptionRepository *subscriptionRepo.Repository
	)

	// Интерфейс общего transaction manager для сервисов и use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		billboardRepository = billboardRepo.NewRepository(wrappedDB)
		contractRepository = contractRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		billboardRepository = billboardRepo.NewRepository(db)
		contractRepository = contractRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, billboardRepository, txMgr, log)
	contractSvc := contractsService.NewService(contractRepository, txMgr, log)
	paymentSvc := paymentsService.NewService(paymentRepository, subscriptionRepository, txMgr, log, cfg.Payments.MaxAttempts)
	subscriptionSvc := subscriptionsService.NewService(subscriptionRepository, log)

	// Инициализируем use cases
	requestBookingUseCase := requestBookingUC.NewUseCase(bookingRepository, billboardRepository, txMgr, log)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(bookingRepository, billboardRepository, txMgr, log)
	getOccupancyUseCase := getOccupancyUC.NewUseCase(bookingRepository, billboardRepository, log)
	runSweepUseCase := runSweepUC.NewUseCase(
		contractRepository,
		bookingRepository,
		billboardRepository,
		warningPublisher,
		txMgr,
		log,
		metricsCollector,
	)

	// Инициализируем handlers
	requestBooking := requestBookingHandler.NewHandler(requestBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	negotiateBooking := negotiateBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getOccupancy := getOccupancyHandler.NewHandler(getOccupancyUseCase, log)
	updateContractStatus := updateContractStatusHandler.NewHandler(contractSvc, log)
	runSweep := runSweepHandler.NewHandler(runSweepUseCase, log)
	initiatePayment := initiatePaymentHandler.NewHandler(paymentSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentSvc, log)
	retryPayment := retryPaymentHandler.NewHandler(paymentSvc, log)
	getSubscription := getSubscriptionHandler.NewHandler(subscriptionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все API маршруты требуют заголовок X-Tenant-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tenant)

	// --- Бронирования ---
	api.HandleFunc("/bookings", requestBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/negotiate", negotiateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Щиты ---
	api.HandleFunc("/billboards/{billboardId}/occupancy", getOccupancy.Handle).Methods(http.MethodGet)

	// --- Договоры ---
	api.HandleFunc("/contracts/{contractId}/status", updateContractStatus.Handle).Methods(http.MethodPatch)

	// --- Реконсиляция ---
	api.HandleFunc("/sweep", runSweep.Handle).Methods(http.MethodPost)

	// --- Платежи и подписки ---
	api.HandleFunc("/payments", initiatePayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/{paymentId}/retry", retryPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/subscriptions/{subscriptionId}", getSubscription.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
