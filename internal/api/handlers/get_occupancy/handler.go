package get_occupancy

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
	"github.com/adstack-mw/billboard-service/internal/api/middleware"
	"github.com/adstack-mw/billboard-service/internal/domain"
	getOccupancy "github.com/adstack-mw/billboard-service/internal/usecase/get_occupancy"
)

const (
	msgInvalidBillboardID = "некорректный ID рекламного щита"
	msgMissingTenant      = "не определен тенант запроса"
	msgInvalidWindow      = "некорректное окно дат, ожидаются параметры from и to в формате YYYY-MM-DD"
	msgBillboardNotFound  = "рекламный щит не найден"
)

type Handler struct {
	useCase GetOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	BillboardID   int64                   `json:"billboardId"`
	Status        string                  `json:"status"`
	OccupancyRate float64                 `json:"occupancyRate"`
	WindowStart   string                  `json:"windowStart"`
	WindowEnd     string                  `json:"windowEnd"`
	Bookings      []BookingWindowResponse `json:"bookings"`
}

// BookingWindowResponse бронирование, занимающее щит в пределах окна
type BookingWindowResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Handle GET /api/v1/billboards/{billboardId}/occupancy?from=2026-01-01&to=2026-02-01
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingTenant)
		return
	}

	billboardID, err := strconv.ParseInt(mux.Vars(r)["billboardId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBillboardID)
		return
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOccupancy.Request{
		TenantID:    tenantID,
		BillboardID: billboardID,
		WindowStart: from,
		WindowEnd:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getOccupancy.ErrBillboardNotFound):
			h.logger.Warn("GET /billboards/%d/occupancy - Billboard not found: tenant=%d", billboardID, tenantID)
			handlers.RespondNotFound(w, msgBillboardNotFound)

		case errors.Is(err, getOccupancy.ErrInvalidInput):
			h.logger.Warn("GET /billboards/%d/occupancy - Invalid window: %v", billboardID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /billboards/%d/occupancy - Failed: tenant=%d, error=%v", billboardID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	bookings := make([]BookingWindowResponse, 0, len(result.Bookings))
	for _, b := range result.Bookings {
		bookings = append(bookings, BookingWindowResponse{
			ID:        b.ID,
			ClientID:  b.ClientID,
			StartDate: b.StartDate.Format(domain.DateFormat),
			EndDate:   b.EndDate.Format(domain.DateFormat),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, &OccupancyResponse{
		BillboardID:   result.BillboardID,
		Status:        result.Status,
		OccupancyRate: result.OccupancyRate,
		WindowStart:   result.WindowStart.Format(domain.DateFormat),
		WindowEnd:     result.WindowEnd.Format(domain.DateFormat),
		Bookings:      bookings,
	})
}
