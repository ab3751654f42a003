package run_sweep

import (
	"net/http"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	runSweep "github.com/adstack-mw/billboard-service/internal/usecase/run_sweep"
)

const msgMissingTenant = "не определен тенант запроса"

type Handler struct {
	useCase RunSweepUseCase
	logger  Logger
}

func NewHandler(useCase RunSweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// SweepReportResponse HTTP response model
type SweepReportResponse struct {
	WarningsSent       int `json:"warningsSent"`
	ContractsCompleted int `json:"contractsCompleted"`
	BookingsCompleted  int `json:"bookingsCompleted"`
	Errors             int `json:"errors"`
}

// Handle POST /api/v1/sweep
// Запуск прохода реконсиляции вручную; тот же код выполняется
// по расписанию бинарем sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	report, err := h.useCase.Execute(r.Context(), &runSweep.Request{TenantID: tenantID})
	if err != nil {
		h.logger.Error("POST /sweep - Failed: tenant=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sweep - Sweep finished: tenant=%d, warnings=%d, contracts=%d, bookings=%d, errors=%d",
		tenantID, report.WarningsSent, report.ContractsCompleted, report.BookingsCompleted, report.Errors)
	handlers.RespondJSON(w, http.StatusOK, &SweepReportResponse{
		WarningsSent:       report.WarningsSent,
		ContractsCompleted: report.ContractsCompleted,
		BookingsCompleted:  report.BookingsCompleted,
		Errors:             report.Errors,
	})
}
