package create_tariff_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers"
	tariffService "github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownRatePlan    = "неизвестный тарифный план"
	msgInvalidSlot        = "некорректное определение тарифного слота"
	msgTariffConflict     = "тарифный слот пересекается с действующим слотом"
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

// Handle POST /api/v1/tariffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload models.SlotPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /tariffs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &payload)
	if err != nil {
		switch {
		case errors.Is(err, tariffService.ErrUnknownRatePlan):
			h.logger.Warn("POST /tariffs - Unknown rate plan: %q", payload.RatePlan)
			handlers.RespondBadRequest(w, msgUnknownRatePlan)

		case errors.Is(err, tariffService.ErrInvalidInput):
			h.logger.Warn("POST /tariffs - Invalid slot definition: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, tariffService.ErrTariffConflict):
			h.logger.Warn("POST /tariffs - Tariff conflict: plan=%s, vehicle=%s, day=%s",
				payload.RatePlan, payload.VehicleType, payload.DayOfWeek)
			handlers.RespondError(w, http.StatusConflict, msgTariffConflict)

		default:
			h.logger.Error("POST /tariffs - Failed to create slot: plan=%s, error=%v", payload.RatePlan, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tariffs - Slot created: id=%d, plan=%s, day=%s",
		result.ID, result.RatePlan, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
