package calculate_fee

import "errors"

var (
	// ErrInvalidInterval возвращается, когда exit <= entry
	ErrInvalidInterval = errors.New("exit time must be after entry time")

	// ErrUnknownRatePlan возвращается, когда тарифный план отсутствует в каталоге
	ErrUnknownRatePlan = errors.New("unknown rate plan")

	// ErrUnknownVehicleType возвращается при неизвестном типе транспорта
	ErrUnknownVehicleType = errors.New("unknown vehicle type")

	// ErrNoApplicableTariff возвращается, когда часть сессии не покрыта ни одним слотом
	// Сессия без тарифа - это ошибка конфигурации, а не бесплатная парковка
	ErrNoApplicableTariff = errors.New("no applicable tariff covers the session")

	// ErrAmbiguousTariff возвращается, когда часть сессии покрыта несколькими слотами
	// Нарушен инвариант репозитория; ошибка поднимается наверх, а не маскируется выбором
	ErrAmbiguousTariff = errors.New("ambiguous tariff: multiple slots cover the session")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
