package run_sweep

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/internal/integrations/notify"
	"github.com/adstack-mw/billboard-service/pkg/metrics"
	"github.com/adstack-mw/billboard-service/pkg/ptr"
)

// UseCase use case прохода реконсиляции: предупреждения об истечении договоров,
// автозавершение истекших договоров и подтвержденных бронирований
type UseCase struct {
	contractRepo  ContractRepository
	bookingRepo   BookingRepository
	billboardRepo BillboardRepository
	publisher     WarningPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	metrics       *metrics.Metrics
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если сбор метрик отключен конфигурацией
func NewUseCase(
	contractRepo ContractRepository,
	bookingRepo BookingRepository,
	billboardRepo BillboardRepository,
	publisher WarningPublisher,
	txManager TransactionManager,
	logger Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		contractRepo:  contractRepo,
		bookingRepo:   bookingRepo,
		billboardRepo: billboardRepo,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		metrics:       m,
	}
}

// Execute выполняет один проход sweep'а для тенанта
// Ошибки по отдельным договорам и бронированиям логируются и считаются,
// но не прерывают проход - оставшиеся записи будут обработаны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Report, error) {
	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenant id must be positive", ErrInvalidInput)
	}

	// Даты договоров и бронирований хранятся как DATE (полночь),
	// поэтому сроки считаются от начала текущего дня, а не от wall-clock:
	// запуск в 14:00 не должен превращать ровно 7 дней до истечения в 6
	wall := uc.timeProvider.Now()
	now := time.Date(wall.Year(), wall.Month(), wall.Day(), 0, 0, 0, 0, wall.Location())
	report := &Report{TenantID: req.TenantID}

	uc.logger.Info("RunSweep: starting sweep for tenant=%d at %s",
		req.TenantID, now.Format(domain.DateFormat))

	uc.sweepContracts(ctx, req.TenantID, now, report)
	uc.sweepBookings(ctx, req.TenantID, now, report)

	result := "success"
	if report.Errors > 0 {
		result = "partial"
	}
	if uc.metrics != nil {
		uc.metrics.SweepRunsTotal.WithLabelValues(result).Inc()
	}

	uc.logger.Info("RunSweep: tenant=%d done: warnings=%d, contracts=%d, bookings=%d, errors=%d",
		req.TenantID, report.WarningsSent, report.ContractsCompleted, report.BookingsCompleted, report.Errors)

	return report, nil
}

// sweepContracts обрабатывает активные договоры тенанта:
// рассылает предупреждения на точных порогах и завершает истекшие
func (uc *UseCase) sweepContracts(ctx context.Context, tenantID int64, now time.Time, report *Report) {
	contracts, err := uc.contractRepo.ListActive(ctx, tenantID)
	if err != nil {
		uc.logger.Error("RunSweep: failed to list active contracts for tenant=%d: %v", tenantID, err)
		report.Errors++
		return
	}

	for _, c := range contracts {
		if c.IsExpired(now) {
			if err := uc.completeContract(ctx, c); err != nil {
				uc.logger.Error("RunSweep: failed to complete contract id=%d: %v", c.ID, err)
				report.Errors++
				continue
			}
			report.ContractsCompleted++
			if uc.metrics != nil {
				uc.metrics.SweepContractsCompleted.WithLabelValues().Inc()
			}
			continue
		}

		days := c.DaysUntilExpiration(now)
		if !isWarningThreshold(days) {
			continue
		}

		event := notify.ExpirationWarning{
			TenantID:            c.TenantID,
			ContractID:          c.ID,
			ClientID:            c.ClientID,
			DaysUntilExpiration: days,
			Urgency:             domain.UrgencyFor(days),
			EndDate:             c.EndDate,
		}
		if err := uc.publisher.PublishExpirationWarning(ctx, event); err != nil {
			uc.logger.Error("RunSweep: failed to publish warning for contract id=%d: %v", c.ID, err)
			report.Errors++
			continue
		}
		report.WarningsSent++
		if uc.metrics != nil {
			uc.metrics.SweepExpirationWarnings.WithLabelValues(strconv.Itoa(days)).Inc()
		}
	}
}

// completeContract переводит истекший договор в completed и каскадно
// обновляет pivot-записи через единую таблицу соответствия статусов
func (uc *UseCase) completeContract(ctx context.Context, c *domain.Contract) error {
	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.contractRepo.UpdateAgreementStatus(txCtx, c.TenantID, c.ID, domain.AgreementCompleted); err != nil {
			return fmt.Errorf("%w: failed to update agreement status: %v", ErrInternal, err)
		}
		pivot := domain.PivotStatusFor(domain.AgreementCompleted)
		if err := uc.contractRepo.UpdatePivotStatuses(txCtx, c.ID, pivot); err != nil {
			return fmt.Errorf("%w: failed to cascade pivot statuses: %v", ErrInternal, err)
		}
		uc.logger.Info("RunSweep: contract id=%d completed, pivots set to %s", c.ID, pivot)
		return nil
	})
}

// sweepBookings завершает подтвержденные бронирования с истекшим периодом аренды
func (uc *UseCase) sweepBookings(ctx context.Context, tenantID int64, now time.Time, report *Report) {
	expired, err := uc.bookingRepo.ListExpiredConfirmed(ctx, tenantID, now)
	if err != nil {
		uc.logger.Error("RunSweep: failed to list expired bookings for tenant=%d: %v", tenantID, err)
		report.Errors++
		return
	}

	for _, b := range expired {
		completed, err := uc.completeBooking(ctx, b.TenantID, b.ID, now)
		if err != nil {
			uc.logger.Error("RunSweep: failed to complete booking id=%d: %v", b.ID, err)
			report.Errors++
			continue
		}
		if !completed {
			continue
		}
		report.BookingsCompleted++
		if uc.metrics != nil {
			uc.metrics.SweepBookingsCompleted.WithLabelValues().Inc()
		}
	}
}

// completeBooking переводит бронирование в completed с записью в audit trail
// и пересчетом статуса щита
// Статус перечитывается под блокировкой строки: между выборкой кандидатов
// и транзакцией бронирование могли отменить конкурентным запросом
func (uc *UseCase) completeBooking(ctx context.Context, tenantID, id int64, now time.Time) (bool, error) {
	completed := false
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, tenantID, id)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}
		if !b.CanBeCompleted(now) {
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, b.TenantID, b.ID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
		}

		entry := &domain.StatusChange{
			BookingID:  b.ID,
			FromStatus: ptr.Ptr(b.Status),
			ToStatus:   domain.StatusCompleted,
		}
		if err := uc.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			return fmt.Errorf("%w: failed to append status history: %v", ErrInternal, err)
		}

		// Пересчет статуса щита: завершенное бронирование больше не блокирует
		billboard, err := uc.billboardRepo.GetByID(txCtx, b.TenantID, b.BillboardID)
		if err != nil {
			return fmt.Errorf("%w: failed to get billboard: %v", ErrInternal, err)
		}
		blocking, err := uc.bookingRepo.GetByBillboardWithFilter(txCtx, b.TenantID, domain.BillboardBookingsFilter{
			BillboardID:  b.BillboardID,
			OnlyBlocking: true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}
		status := domain.BillboardCurrentStatus(billboard, blocking, now)
		if err := uc.billboardRepo.UpdateStatus(txCtx, b.TenantID, b.BillboardID, status); err != nil {
			return fmt.Errorf("%w: failed to sync billboard status: %v", ErrInternal, err)
		}
		completed = true
		return nil
	})
	return completed, err
}

// isWarningThreshold проверяет точное совпадение с одним из порогов предупреждений
// Значения 29, 13 и т.п. не срабатывают, повторные уведомления не рассылаются
func isWarningThreshold(days int) bool {
	for _, threshold := range domain.ExpirationWarningDays {
		if days == threshold {
			return true
		}
	}
	return false
}
