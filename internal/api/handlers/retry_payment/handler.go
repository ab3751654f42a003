package retry_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	paymentsService "github.com/adstack-mw/billboard-service/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgMissingTenant      = "не определен тенант запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgRetriesExhausted   = "лимит повторных попыток оплаты исчерпан"
	msgOnlyFailedRetrying = "повторить можно только неудавшийся платеж"
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

// Handle POST /api/v1/payments/{paymentId}/retry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	paymentID, err := strconv.ParseInt(mux.Vars(r)["paymentId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	result, err := h.service.Retry(r.Context(), tenantID, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, paymentsService.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/%d/retry - Payment not found: tenant=%d", paymentID, tenantID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, paymentsService.ErrRetriesExhausted):
			h.logger.Warn("POST /payments/%d/retry - Retries exhausted: tenant=%d", paymentID, tenantID)
			handlers.RespondConflict(w, msgRetriesExhausted)

		case errors.Is(err, paymentsService.ErrInvalidInput):
			h.logger.Warn("POST /payments/%d/retry - Invalid state: tenant=%d", paymentID, tenantID)
			handlers.RespondBadRequest(w, msgOnlyFailedRetrying)

		default:
			h.logger.Error("POST /payments/%d/retry - Failed: tenant=%d, error=%v", paymentID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/%d/retry - Payment retried: attempt=%d, tenant=%d",
		paymentID, result.RetryCount, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
