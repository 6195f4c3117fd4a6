package get_rate_plans

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// RatePlanResponse запись каталога тарифных планов
type RatePlanResponse struct {
	RatePlan  string `json:"ratePlan"`
	RateModel string `json:"rateModel"`
}

// CatalogResponse каталог тарифных планов
type CatalogResponse struct {
	RatePlans []RatePlanResponse `json:"ratePlans"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/rate-plans
// Каталог статический, поэтому обработчик без сервиса и без БД
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	catalog := domain.RatePlanCatalog()

	response := CatalogResponse{
		RatePlans: make([]RatePlanResponse, len(catalog)),
	}
	for i, entry := range catalog {
		response.RatePlans[i] = RatePlanResponse{
			RatePlan:  entry.RatePlan,
			RateModel: string(entry.RateModel),
		}
	}

	h.logger.Info("GET /rate-plans - Returned %d rate plans", len(catalog))
	handlers.RespondJSON(w, http.StatusOK, response)
}
