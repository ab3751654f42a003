package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/adstack-mw/billboard-service/internal/config"
	billboardRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
	bookingRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/booking"
	contractRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/contract"
	"github.com/adstack-mw/billboard-service/internal/integrations/notify"
	runSweepUC "github.com/adstack-mw/billboard-service/internal/usecase/run_sweep"
	"github.com/adstack-mw/billboard-service/pkg/logger"
	"github.com/adstack-mw/billboard-service/pkg/simpletxmanager"
)

// Бинарь периодического sweep'а: обходит всех тенантов и выполняет
// проход реконсиляции для каждого. Тот же use case доступен через
// POST /api/v1/sweep для ручного запуска
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting billboard-service sweep runner...")

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	var warningPublisher runSweepUC.WarningPublisher
	if cfg.Notifications.Enabled {
		producer, err := notify.NewProducer(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer producer.Close()
		warningPublisher = producer
	} else {
		warningPublisher = notify.NewNopPublisher(log)
	}

	bookingRepository := bookingRepo.NewRepository(db)
	billboardRepository := billboardRepo.NewRepository(db)
	contractRepository := contractRepo.NewRepository(db)
	txMgr := simpletxmanager.NewTransactionManager(db)

	sweepUseCase := runSweepUC.NewUseCase(
		contractRepository,
		bookingRepository,
		billboardRepository,
		warningPublisher,
		txMgr,
		log,
		nil, // метрики собирает только HTTP-бинарь
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutdown signal received")
		cancel()
	}()

	runAll(ctx, contractRepository, sweepUseCase, log)

	// interval <= 0 means single run (запуск по cron)
	if cfg.Sweep.Interval <= 0 {
		log.Info("Sweep runner finished (single run)")
		return
	}

	ticker := time.NewTicker(time.Duration(cfg.Sweep.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Sweep runner stopped")
			return
		case <-ticker.C:
			runAll(ctx, contractRepository, sweepUseCase, log)
		}
	}
}

// runAll выполняет проход sweep'а для каждого тенанта
// Ошибка одного тенанта не прерывает обход остальных
func runAll(ctx context.Context, contracts *contractRepo.Repository, uc *runSweepUC.UseCase, log *logger.Logger) {
	tenantIDs, err := contracts.ListTenantIDs(ctx)
	if err != nil {
		log.Error("Sweep: failed to list tenants: %v", err)
		return
	}

	log.Info("Sweep: starting run for %d tenants", len(tenantIDs))

	for _, tenantID := range tenantIDs {
		if ctx.Err() != nil {
			return
		}
		report, err := uc.Execute(ctx, &runSweepUC.Request{TenantID: tenantID})
		if err != nil {
			log.Error("Sweep: tenant=%d failed: %v", tenantID, err)
			continue
		}
		log.Info("Sweep: tenant=%d: warnings=%d, contracts=%d, bookings=%d, errors=%d",
			tenantID, report.WarningsSent, report.ContractsCompleted, report.BookingsCompleted, report.Errors)
	}
}
