package get_tariffs

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers"
	tariffService "github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

const (
	msgUnknownRatePlan = "неизвестный тарифный план"
	msgInvalidAsOf     = "некорректный параметр asOf, ожидается RFC 3339"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	service TariffService
	logger  Logger
}

func NewHandler(service TariffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rate-plans/{ratePlan}/tariffs?vehicleType=&asOf=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ratePlan := vars["ratePlan"]

	req := &models.GetTariffsRequest{RatePlan: ratePlan}

	if vehicleType := r.URL.Query().Get("vehicleType"); vehicleType != "" {
		req.VehicleType = &vehicleType
	}

	if asOfParam := r.URL.Query().Get("asOf"); asOfParam != "" {
		asOf, err := time.Parse(time.RFC3339, asOfParam)
		if err != nil {
			h.logger.Warn("GET /rate-plans/{ratePlan}/tariffs - Invalid asOf: %q", asOfParam)
			handlers.RespondBadRequest(w, msgInvalidAsOf)
			return
		}
		req.AsOf = &asOf
	}

	result, err := h.service.GetSchedule(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, tariffService.ErrUnknownRatePlan):
			h.logger.Warn("GET /rate-plans/{ratePlan}/tariffs - Unknown rate plan: %q", ratePlan)
			handlers.RespondNotFound(w, msgUnknownRatePlan)

		case errors.Is(err, tariffService.ErrInvalidInput):
			h.logger.Warn("GET /rate-plans/{ratePlan}/tariffs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /rate-plans/{ratePlan}/tariffs - Failed to get schedule: plan=%s, error=%v", ratePlan, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rate-plans/{ratePlan}/tariffs - Returned schedule for plan=%s", result.RatePlan)
	handlers.RespondJSON(w, http.StatusOK, result)
}
