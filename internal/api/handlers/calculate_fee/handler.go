package calculate_fee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers"
	calculateFee "github.com/m04kA/SMC-ParkingFeeService/internal/usecase/calculate_fee"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInterval    = "время выезда должно быть позже времени въезда"
	msgUnknownRatePlan    = "неизвестный тарифный план"
	msgUnknownVehicleType = "неизвестный тип транспорта"
	msgNoApplicableTariff = "часть сессии не покрыта ни одним тарифом"
	msgAmbiguousTariff    = "конфликт тарифной конфигурации: сессию покрывают несколько тарифов"
)

type Handler struct {
	useCase CalculateFeeUseCase
	logger  Logger
}

func NewHandler(useCase CalculateFeeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fees/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculateFeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fees/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /fees/calculate - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, calculateFee.ErrInvalidInterval):
			h.logger.Warn("POST /fees/calculate - Invalid interval: entry=%s, exit=%s", req.EntryTime, req.ExitTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, calculateFee.ErrUnknownRatePlan):
			h.logger.Warn("POST /fees/calculate - Unknown rate plan: %q", req.RatePlan)
			handlers.RespondBadRequest(w, msgUnknownRatePlan)

		case errors.Is(err, calculateFee.ErrUnknownVehicleType):
			h.logger.Warn("POST /fees/calculate - Unknown vehicle type: %q", req.VehicleType)
			handlers.RespondBadRequest(w, msgUnknownVehicleType)

		case errors.Is(err, calculateFee.ErrNoApplicableTariff):
			h.logger.Warn("POST /fees/calculate - No applicable tariff: plan=%s, vehicle=%s", req.RatePlan, req.VehicleType)
			handlers.RespondNotFound(w, msgNoApplicableTariff)

		case errors.Is(err, calculateFee.ErrAmbiguousTariff):
			// Нарушен инвариант тарифной конфигурации; отвечаем 500, не маскируем
			h.logger.Error("POST /fees/calculate - Ambiguous tariff: plan=%s, vehicle=%s, error=%v",
				req.RatePlan, req.VehicleType, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgAmbiguousTariff)

		default:
			h.logger.Error("POST /fees/calculate - Failed to calculate fee: plan=%s, vehicle=%s, error=%v",
				req.RatePlan, req.VehicleType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fees/calculate - Fee calculated: plan=%s, model=%s, total=%s %s",
		result.RatePlan, result.RateModel, result.TotalFee.StringFixed(2), result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
