package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/adstack-mw/billboard-service/internal/domain"
	bookingRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/booking"
	"github.com/adstack-mw/billboard-service/pkg/ptr"
	"github.com/adstack-mw/billboard-service/pkg/txmanager"
)

// UseCase use case для подтверждения бронирования владельцем щитов
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

// Execute выполняет подтверждение бронирования
// Критическая секция: проверка конфликта и смена статуса выполняются
// в одной SERIALIZABLE транзакции, строки бронирований берутся FOR UPDATE,
// чтобы два конкурентных подтверждения не создали пересекающиеся аренды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: tenant=%d, booking=%d, finalPrice=%.2f",
		req.TenantID, req.BookingID, req.FinalPrice)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Критическая секция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем бронирование с блокировкой FOR UPDATE
		booking, err := uc.bookingRepo.GetByID(txCtx, req.TenantID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Подтвердить можно только заявку в статусе requested
		if !booking.CanBeConfirmed() {
			uc.logger.Warn("ConfirmBooking: booking id=%d has status %s, cannot confirm",
				booking.ID, booking.Status)
			return ErrInvalidStateTransition
		}

		// 2.3. Повторная проверка конфликта внутри транзакции:
		// другое бронирование могло быть подтверждено между запросом и подтверждением
		blocking, err := uc.bookingRepo.GetByBillboardWithFilter(txCtx, req.TenantID, domain.BillboardBookingsFilter{
			BillboardID:  booking.BillboardID,
			OnlyBlocking: true,
		})
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to get blocking bookings: %v", err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		if conflict := domain.FindConflict(blocking, booking.StartDate, booking.EndDate, booking.ID); conflict != nil {
			uc.logger.Warn("ConfirmBooking: booking id=%d conflicts with confirmed booking id=%d",
				booking.ID, conflict.ID)
			return ErrBookingConflict
		}

		// 2.4. Переводим в confirmed с фиксацией итоговой цены
		if err := uc.bookingRepo.Confirm(txCtx, req.TenantID, booking.ID, req.FinalPrice); err != nil {
			uc.logger.Error("ConfirmBooking: failed to confirm booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		entry := &domain.StatusChange{
			BookingID:  booking.ID,
			FromStatus: ptr.Ptr(booking.Status),
			ToStatus:   domain.StatusConfirmed,
		}
		if err := uc.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			uc.logger.Error("ConfirmBooking: failed to append status history: %v", err)
			return fmt.Errorf("%w: failed to append status history: %v", ErrInternal, err)
		}

		// 2.5. Пересчитываем статус щита с учетом нового подтвержденного бронирования
		billboard, err := uc.billboardRepo.GetByID(txCtx, req.TenantID, booking.BillboardID)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to get billboard id=%d: %v", booking.BillboardID, err)
			return fmt.Errorf("%w: failed to get billboard: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.FinalPrice = ptr.Ptr(req.FinalPrice)

		status := domain.BillboardCurrentStatus(billboard, append(blocking, booking), now)
		if err := uc.billboardRepo.UpdateStatus(txCtx, req.TenantID, booking.BillboardID, status); err != nil {
			uc.logger.Error("ConfirmBooking: failed to sync billboard status: %v", err)
			return fmt.Errorf("%w: failed to sync billboard status: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		// Исчерпание попыток сериализации трактуем как конфликт бронирования
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("ConfirmBooking: serialization retries exhausted for booking id=%d", req.BookingID)
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: successfully confirmed booking id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		BillboardID: result.BillboardID,
		ClientID:    result.ClientID,
		StartDate:   result.StartDate,
		EndDate:     result.EndDate,
		FinalPrice:  req.FinalPrice,
		Status:      string(result.Status),
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
