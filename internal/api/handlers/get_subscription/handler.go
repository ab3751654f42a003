package get_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	subscriptionsService "github.com/adstack-mw/billboard-service/internal/service/subscriptions"
)

const (
	msgInvalidSubscriptionID = "некорректный ID подписки"
	msgMissingTenant         = "не определен тенант запроса"
	msgSubscriptionNotFound  = "подписка не найдена"
)

type Handler struct {
	service SubscriptionsService
	logger  Logger
}

func NewHandler(service SubscriptionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/subscriptions/{subscriptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	subscriptionID, err := strconv.ParseInt(mux.Vars(r)["subscriptionId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSubscriptionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), tenantID, subscriptionID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptionsService.ErrSubscriptionNotFound):
			h.logger.Warn("GET /subscriptions/%d - Subscription not found: tenant=%d", subscriptionID, tenantID)
			handlers.RespondNotFound(w, msgSubscriptionNotFound)

		default:
			h.logger.Error("GET /subscriptions/%d - Failed: tenant=%d, error=%v", subscriptionID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
