package negotiate_booking

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
	msgNegotiationClosed  = "переговоры по заявке закрыты"
	msgInvalidInput       = "некорректные параметры предложения"
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

// Handle POST /api/v1/bookings/{bookingId}/negotiate
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

	var req models.NegotiateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/negotiate - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Negotiate(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/negotiate - Booking not found: tenant=%d", bookingID, tenantID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/%d/negotiate - Negotiation closed: tenant=%d", bookingID, tenantID)
			handlers.RespondConflict(w, msgNegotiationClosed)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%d/negotiate - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/%d/negotiate - Failed: tenant=%d, error=%v", bookingID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/negotiate - Offer recorded: tenant=%d", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
