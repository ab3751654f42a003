package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	confirmBooking "github.com/adstack-mw/billboard-service/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingTenant      = "не определен тенант запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingConflict    = "диапазон дат пересекается с подтвержденным бронированием"
	msgInvalidTransition  = "подтвердить можно только заявку в статусе requested"
	msgInvalidInput       = "некорректные параметры подтверждения"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/confirm - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		TenantID:   tenantID,
		BookingID:  bookingID,
		FinalPrice: req.FinalPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/confirm - Booking not found: tenant=%d", bookingID, tenantID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings/%d/confirm - Conflict: tenant=%d", bookingID, tenantID)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, confirmBooking.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/%d/confirm - Invalid transition: tenant=%d", bookingID, tenantID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%d/confirm - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/%d/confirm - Failed to confirm: tenant=%d, error=%v",
				bookingID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/confirm - Booking confirmed: tenant=%d", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
