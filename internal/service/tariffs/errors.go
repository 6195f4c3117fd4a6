package tariffs

import "errors"

var (
	// ErrSlotNotFound возвращается, когда тарифный слот не найден
	ErrSlotNotFound = errors.New("tariff slot not found")

	// ErrUnknownRatePlan возвращается, когда тарифный план отсутствует в каталоге
	ErrUnknownRatePlan = errors.New("unknown rate plan")

	// ErrTariffConflict возвращается, когда запись создала бы пересекающийся
	// активный слот для той же тройки (тип транспорта, план, день недели)
	ErrTariffConflict = errors.New("tariff slot overlaps an active slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
