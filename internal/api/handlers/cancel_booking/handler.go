package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	bookingsService "github.com/adstack-mw/billboard-service/internal/service/bookings"
	"github.com/adstack-mw/billboard-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingTenant      = "не определен тенант запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование в текущем статусе нельзя отменить"
	msgInvalidInput       = "некорректные параметры отмены"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
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

	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/cancel - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	if err := h.service.Cancel(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - Booking not found: tenant=%d", bookingID, tenantID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid transition: tenant=%d", bookingID, tenantID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed: tenant=%d, error=%v", bookingID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Booking cancelled: tenant=%d", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
