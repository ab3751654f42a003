package get_occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/adstack-mw/billboard-service/internal/domain"
	billboardRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/billboard"
)

// UseCase use case для расчета занятости щита за произвольное окно дат
type UseCase struct {
	bookingRepo   BookingRepository
	billboardRepo BillboardRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	billboardRepo BillboardRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		billboardRepo: billboardRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute возвращает текущий статус щита и процент занятости окна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOccupancy: validation failed: %v", err)
		return nil, err
	}

	billboard, err := uc.billboardRepo.GetByID(ctx, req.TenantID, req.BillboardID)
	if err != nil {
		if errors.Is(err, billboardRepo.ErrBillboardNotFound) {
			return nil, ErrBillboardNotFound
		}
		uc.logger.Error("GetOccupancy: failed to get billboard id=%d: %v", req.BillboardID, err)
		return nil, fmt.Errorf("%w: failed to get billboard: %v", ErrInternal, err)
	}

	// Занятость считается только по подтвержденным бронированиям
	blocking, err := uc.bookingRepo.GetByBillboardWithFilter(ctx, req.TenantID, domain.BillboardBookingsFilter{
		BillboardID:  req.BillboardID,
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("GetOccupancy: failed to get bookings for billboard id=%d: %v", req.BillboardID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// В ответ попадают только бронирования, пересекающие запрошенное окно
	var windowBookings []BookingWindow
	for _, b := range blocking {
		if !domain.Overlaps(b.StartDate, b.EndDate, req.WindowStart, req.WindowEnd) {
			continue
		}
		windowBookings = append(windowBookings, BookingWindow{
			ID:        b.ID,
			ClientID:  b.ClientID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		})
	}

	return &Response{
		BillboardID:   billboard.ID,
		Status:        string(domain.BillboardCurrentStatus(billboard, blocking, now)),
		OccupancyRate: domain.OccupancyRate(blocking, req.WindowStart, req.WindowEnd),
		WindowStart:   req.WindowStart,
		WindowEnd:     req.WindowEnd,
		Bookings:      windowBookings,
	}, nil
}

func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant id must be positive", ErrInvalidInput)
	}
	if req.BillboardID <= 0 {
		return fmt.Errorf("%w: billboard id must be positive", ErrInvalidInput)
	}
	if req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return fmt.Errorf("%w: window dates are required", ErrInvalidInput)
	}
	if !req.WindowEnd.After(req.WindowStart) {
		return fmt.Errorf("%w: window end must be after window start", ErrInvalidInput)
	}
	return nil
}
