package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/adstack-mw/billboard-service/internal/domain"
	bookingRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/booking"
	"github.com/adstack-mw/billboard-service/internal/service/bookings/models"
	"github.com/adstack-mw/billboard-service/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	billboardRepo BillboardRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	billboardRepo BillboardRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		billboardRepo: billboardRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID вместе с историей переговоров
// и полным audit trail переходов статусов
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", id, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	negotiations, err := s.bookingRepo.ListNegotiations(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to list negotiations for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list negotiations: %v", ErrInternal, err)
	}
	booking.Negotiations = negotiations

	history, err := s.bookingRepo.ListStatusHistory(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to list status history for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list status history: %v", ErrInternal, err)
	}
	booking.StatusHistory = history

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, tenant=%d, status=%v",
		req.ClientID, req.TenantID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.TenantID, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// Negotiate добавляет ценовое предложение в историю переговоров
// Переговоры возможны только пока заявка в статусе requested;
// предложение не меняет цену бронирования - итоговую цену фиксирует подтверждение
func (s *Service) Negotiate(ctx context.Context, bookingID int64, req *models.NegotiateRequest) (*models.BookingResponse, error) {
	s.logger.Info("Negotiate: booking id=%d, offeredBy=%s, price=%.2f", bookingID, req.OfferedBy, req.OfferedPrice)

	if req.OfferedPrice < 0 {
		return nil, fmt.Errorf("%w: offered price must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	party, err := models.ToDomainParty(req.OfferedBy)
	if err != nil {
		s.logger.Warn("Negotiate: invalid party=%s for booking id=%d", req.OfferedBy, bookingID)
		return nil, fmt.Errorf("%w: invalid negotiation party", ErrInvalidInput)
	}

	// Проверка статуса и запись предложения - под блокировкой строки,
	// чтобы конкурентное подтверждение не закрыло переговоры между ними
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.TenantID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Negotiate: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Negotiate: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Negotiate - repository error: %v", ErrInternal, err)
		}

		if !booking.CanNegotiate() {
			s.logger.Warn("Negotiate: booking id=%d has status %s, negotiation closed", bookingID, booking.Status)
			return ErrInvalidStateTransition
		}

		entry := &domain.PriceNegotiation{
			BookingID:    booking.ID,
			OfferedPrice: req.OfferedPrice,
			OfferedBy:    party,
			Notes:        req.Notes,
		}
		if err := s.bookingRepo.AppendNegotiation(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Negotiate - failed to append negotiation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Negotiate: appended offer for booking id=%d", bookingID)
	return s.GetByID(ctx, req.TenantID, bookingID)
}

// Reject отклоняет заявку владельцем щитов
// Допустимо только из статуса requested
func (s *Service) Reject(ctx context.Context, bookingID int64, req *models.RejectRequest) error {
	s.logger.Info("Reject: rejecting booking id=%d for tenant=%d", bookingID, req.TenantID)

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	// Чтение и проверка статуса - внутри транзакции: GetByID берет FOR UPDATE,
	// и переход requested -> rejected становится атомарным per-booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.TenantID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Reject: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeRejected() {
			s.logger.Warn("Reject: booking id=%d has status %s, cannot reject", bookingID, booking.Status)
			return ErrInvalidStateTransition
		}

		if err := s.bookingRepo.Reject(txCtx, req.TenantID, bookingID, req.Reason); err != nil {
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}
		entry := &domain.StatusChange{
			BookingID:  bookingID,
			FromStatus: ptr.Ptr(booking.Status),
			ToStatus:   domain.StatusRejected,
			Reason:     ptr.Ptr(req.Reason),
		}
		if err := s.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Reject - failed to append status history: %v", ErrInternal, err)
		}
		return s.syncBillboardStatus(txCtx, req.TenantID, booking.BillboardID)
	})
	if err != nil {
		s.logger.Error("Reject: failed to reject booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)
	return nil
}

// Cancel отменяет бронирование
// Допустимо из статусов requested и confirmed; отмена подтвержденного
// бронирования освобождает диапазон дат для новых заявок
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d for tenant=%d", bookingID, req.TenantID)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	// Чтение и проверка статуса - внутри транзакции, иначе конкурентный
	// sweep может успеть завершить бронирование между проверкой и записью
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.TenantID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d has status %s, cannot cancel", bookingID, booking.Status)
			return ErrInvalidStateTransition
		}

		if err := s.bookingRepo.Cancel(txCtx, req.TenantID, bookingID, req.CancellationReason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		entry := &domain.StatusChange{
			BookingID:  bookingID,
			FromStatus: ptr.Ptr(booking.Status),
			ToStatus:   domain.StatusCancelled,
			Reason:     ptr.Ptr(req.CancellationReason),
		}
		if err := s.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Cancel - failed to append status history: %v", ErrInternal, err)
		}
		return s.syncBillboardStatus(txCtx, req.TenantID, booking.BillboardID)
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// syncBillboardStatus пересчитывает операционный статус щита
// после перехода статуса бронирования
func (s *Service) syncBillboardStatus(ctx context.Context, tenantID, billboardID int64) error {
	billboard, err := s.billboardRepo.GetByID(ctx, tenantID, billboardID)
	if err != nil {
		return fmt.Errorf("%w: failed to get billboard: %v", ErrInternal, err)
	}
	blocking, err := s.bookingRepo.GetByBillboardWithFilter(ctx, tenantID, domain.BillboardBookingsFilter{
		BillboardID:  billboardID,
		OnlyBlocking: true,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
	}
	status := domain.BillboardCurrentStatus(billboard, blocking, s.timeProvider.Now())
	if err := s.billboardRepo.UpdateStatus(ctx, tenantID, billboardID, status); err != nil {
		return fmt.Errorf("%w: failed to sync billboard status: %v", ErrInternal, err)
	}
	return nil
}
