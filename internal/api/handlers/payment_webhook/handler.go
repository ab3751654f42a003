package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	paymentsService "github.com/adstack-mw/billboard-service/internal/service/payments"
	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenant      = "не определен тенант запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgInvalidInput       = "некорректный callback провайдера"
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

// webhookBody тело callback'а провайдера
type webhookBody struct {
	Reference  string `json:"reference"`
	ResultCode string `json:"resultCode"`
}

// Handle POST /api/v1/payments/webhook
// Сырое тело запроса сохраняется целиком в журнал ответов провайдера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer r.Body.Close()

	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Reference == "" {
		h.logger.Warn("POST /payments/webhook - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.HandleWebhook(r.Context(), &models.WebhookRequest{
		TenantID:   tenantID,
		Reference:  body.Reference,
		ResultCode: body.ResultCode,
		RawPayload: raw,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsService.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: tenant=%d, reference=%s",
				tenantID, body.Reference)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, paymentsService.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments/webhook - Failed: tenant=%d, reference=%s, error=%v",
				tenantID, body.Reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed: payment_id=%d, status=%s, tenant=%d",
		result.ID, result.Status, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
