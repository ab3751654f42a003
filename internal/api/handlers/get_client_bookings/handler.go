package get_client_bookings

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
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingTenant   = "не определен тенант запроса"
	msgInvalidStatus   = "некорректный статус для фильтрации"
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

// Handle GET /api/v1/clients/{clientId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	req := &models.GetClientBookingsRequest{
		TenantID: tenantID,
		ClientID: clientID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidStatus), errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /clients/%d/bookings - Invalid status filter: tenant=%d", clientID, tenantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/%d/bookings - Failed: tenant=%d, error=%v", clientID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
