package request_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/adstack-mw/billboard-service/internal/domain"
	billboardRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
)

// UseCase use case для создания заявки на бронирование щита
type UseCase struct {
	bookingRepo   BookingRepository
	billboardRepo BillboardRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	billboardRepo BillboardRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		billboardRepo: billboardRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки
// Заявка создается в статусе requested; блокируют только подтвержденные
// бронирования, поэтому конфликт проверяется против них
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: tenant=%d, billboard=%d, client=%d, range=%s..%s",
		req.TenantID, req.BillboardID, req.ClientID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование щита
	billboard, err := uc.billboardRepo.GetByID(ctx, req.TenantID, req.BillboardID)
	if err != nil {
		if errors.Is(err, billboardRepo.ErrBillboardNotFound) {
			uc.logger.Warn("RequestBooking: billboard id=%d not found", req.BillboardID)
			return nil, ErrBillboardNotFound
		}
		uc.logger.Error("RequestBooking: failed to get billboard id=%d: %v", req.BillboardID, err)
		return nil, fmt.Errorf("%w: failed to get billboard: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем блокирующие бронирования щита (с блокировкой FOR UPDATE)
		blocking, err := uc.bookingRepo.GetByBillboardWithFilter(txCtx, req.TenantID, domain.BillboardBookingsFilter{
			BillboardID:  req.BillboardID,
			OnlyBlocking: true,
		})
		if err != nil {
			uc.logger.Error("RequestBooking: failed to get blocking bookings: %v", err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		// 3.2. Проверяем конфликт диапазонов
		if conflict := domain.FindConflict(blocking, req.StartDate, req.EndDate, 0); conflict != nil {
			uc.logger.Warn("RequestBooking: conflict with confirmed booking id=%d (%s..%s)",
				conflict.ID,
				conflict.StartDate.Format(domain.DateFormat),
				conflict.EndDate.Format(domain.DateFormat))
			return ErrBookingConflict
		}

		// 3.3. Создаем заявку в статусе requested
		booking := &domain.Booking{
			TenantID:       req.TenantID,
			BillboardID:    req.BillboardID,
			ClientID:       req.ClientID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			RequestedPrice: req.RequestedPrice,
			Status:         domain.StatusRequested,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.4. Первая запись audit trail: from_status = NULL
		entry := &domain.StatusChange{
			BookingID: created.ID,
			ToStatus:  domain.StatusRequested,
		}
		if err := uc.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			uc.logger.Error("RequestBooking: failed to append status history: %v", err)
			return fmt.Errorf("%w: failed to append status history: %v", ErrInternal, err)
		}

		// 3.5. Пересчитываем статус щита (push-based синхронизация)
		// Заявка не блокирует, но каждый успешный переход обязан пересчитать статус
		status := domain.BillboardCurrentStatus(billboard, blocking, now)
		if err := uc.billboardRepo.UpdateStatus(txCtx, req.TenantID, req.BillboardID, status); err != nil {
			uc.logger.Error("RequestBooking: failed to sync billboard status: %v", err)
			return fmt.Errorf("%w: failed to sync billboard status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		BillboardID:    result.BillboardID,
		ClientID:       result.ClientID,
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
		RequestedPrice: result.RequestedPrice,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
