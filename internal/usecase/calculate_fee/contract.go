package calculate_fee

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// TariffRepository интерфейс репозитория тарифных слотов
// Движку нужно только чтение: снимок слотов, активных на момент въезда
type TariffRepository interface {
	FindSlots(ctx context.Context, vehicleType domain.VehicleType, ratePlan string, asOf time.Time) ([]*domain.TariffSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
