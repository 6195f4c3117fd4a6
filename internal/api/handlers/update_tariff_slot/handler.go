package update_tariff_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers"
	tariffService "github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный идентификатор слота"
	msgSlotNotFound       = "тарифный слот не найден"
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

// Handle PUT /api/v1/tariffs/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("PUT /tariffs/{slotId} - Invalid slot id: %q", mux.Vars(r)["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var payload models.SlotPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("PUT /tariffs/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), slotID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, tariffService.ErrSlotNotFound):
			h.logger.Warn("PUT /tariffs/{slotId} - Slot not found: id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, tariffService.ErrUnknownRatePlan):
			h.logger.Warn("PUT /tariffs/{slotId} - Unknown rate plan: %q", payload.RatePlan)
			handlers.RespondBadRequest(w, msgUnknownRatePlan)

		case errors.Is(err, tariffService.ErrInvalidInput):
			h.logger.Warn("PUT /tariffs/{slotId} - Invalid slot definition: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, tariffService.ErrTariffConflict):
			h.logger.Warn("PUT /tariffs/{slotId} - Tariff conflict: id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgTariffConflict)

		default:
			h.logger.Error("PUT /tariffs/{slotId} - Failed to update slot: id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tariffs/{slotId} - Slot updated: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
