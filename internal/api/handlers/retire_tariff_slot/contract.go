package retire_tariff_slot

import (
	"context"

	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

type TariffService interface {
	Retire(ctx context.Context, slotID int64, req *models.RetireSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
