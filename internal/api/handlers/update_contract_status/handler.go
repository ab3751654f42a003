package update_contract_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	contractsService "github.com/adstack-mw/billboard-service/internal/service/contracts"
	"github.com/adstack-mw/billboard-service/internal/service/contracts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidContractID  = "некорректный ID договора"
	msgMissingTenant      = "не определен тенант запроса"
	msgContractNotFound   = "договор не найден"
	msgInvalidTransition  = "недопустимый переход статуса договора"
	msgInvalidStatus      = "некорректный статус договора"
)

type Handler struct {
	service ContractsService
	logger  Logger
}

func NewHandler(service ContractsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/contracts/{contractId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	contractID, err := strconv.ParseInt(mux.Vars(r)["contractId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidContractID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /contracts/%d/status - Invalid request body: %v", contractID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.UpdateStatus(r.Context(), contractID, &req)
	if err != nil {
		switch {
		case errors.Is(err, contractsService.ErrContractNotFound):
			h.logger.Warn("PATCH /contracts/%d/status - Contract not found: tenant=%d", contractID, tenantID)
			handlers.RespondNotFound(w, msgContractNotFound)

		case errors.Is(err, contractsService.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /contracts/%d/status - Invalid transition to %s: tenant=%d",
				contractID, req.Status, tenantID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, contractsService.ErrInvalidStatus):
			h.logger.Warn("PATCH /contracts/%d/status - Invalid status %s: tenant=%d",
				contractID, req.Status, tenantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /contracts/%d/status - Failed: tenant=%d, error=%v", contractID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /contracts/%d/status - Contract moved to %s: tenant=%d", contractID, req.Status, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
