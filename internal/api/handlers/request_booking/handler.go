package request_booking

import (
	"errors"
	"net/http"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	requestBooking "github.com/adstack-mw/billboard-service/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenant      = "не определен тенант запроса"
	msgBillboardNotFound  = "рекламный щит не найден"
	msgBookingConflict    = "диапазон дат пересекается с подтвержденным бронированием"
	msgInvalidInput       = "некорректные параметры заявки"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Conflict: tenant=%d, billboard=%d", tenantID, req.BillboardID)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, requestBooking.ErrBillboardNotFound):
			h.logger.Warn("POST /bookings - Billboard not found: tenant=%d, billboard=%d", tenantID, req.BillboardID)
			handlers.RespondNotFound(w, msgBillboardNotFound)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant=%d, billboard=%d, error=%v",
				tenantID, req.BillboardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking requested successfully: booking_id=%d, tenant=%d", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
