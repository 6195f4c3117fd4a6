package tariffs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// TariffRepository интерфейс репозитория тарифных слотов
type TariffRepository interface {
	Create(ctx context.Context, slot *domain.TariffSlot) (*domain.TariffSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TariffSlot, error)
	ListByRatePlan(ctx context.Context, ratePlan string, vehicleType *domain.VehicleType, asOf time.Time) ([]*domain.TariffSlot, error)
	FindByTriple(ctx context.Context, vehicleType domain.VehicleType, ratePlan string, dayOfWeek time.Weekday) ([]*domain.TariffSlot, error)
	Update(ctx context.Context, slot *domain.TariffSlot) error
	Retire(ctx context.Context, id int64, effectiveEnd time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
// Записи тарифов проверяют инвариант непересечения внутри SERIALIZABLE транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
