package retire_tariff_slot

import (
	"errors"
	"io"
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
	msgInvalidRetire      = "некорректная дата завершения действия слота"
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

// Handle PATCH /api/v1/tariffs/{slotId}/retire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("PATCH /tariffs/{slotId}/retire - Invalid slot id: %q", mux.Vars(r)["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Тело опционально: без него слот закрывается текущим моментом
	var req models.RetireSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /tariffs/{slotId}/retire - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Retire(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tariffService.ErrSlotNotFound):
			h.logger.Warn("PATCH /tariffs/{slotId}/retire - Slot not found: id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, tariffService.ErrInvalidInput):
			h.logger.Warn("PATCH /tariffs/{slotId}/retire - Invalid effectiveEnd: id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRetire)

		default:
			h.logger.Error("PATCH /tariffs/{slotId}/retire - Failed to retire slot: id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /tariffs/{slotId}/retire - Slot retired: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
