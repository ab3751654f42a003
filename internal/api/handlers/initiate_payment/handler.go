package initiate_payment

import (
	"errors"
	"net/http"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	paymentsService "github.com/adstack-mw/billboard-service/internal/service/payments"
	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingTenant        = "не определен тенант запроса"
	msgSubscriptionNotFound = "подписка не найдена"
	msgNotBillable          = "подписка не принимает платежи"
	msgInvalidInput         = "некорректные параметры платежа"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	var req models.InitiatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Initiate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, paymentsService.ErrSubscriptionNotFound):
			h.logger.Warn("POST /payments - Subscription not found: tenant=%d", tenantID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		case errors.Is(err, paymentsService.ErrNotBillable):
			h.logger.Warn("POST /payments - Subscription not billable: tenant=%d", tenantID)
			handlers.RespondConflict(w, msgNotBillable)

		case errors.Is(err, paymentsService.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments - Failed: tenant=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment initiated: payment_id=%d, tenant=%d", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
