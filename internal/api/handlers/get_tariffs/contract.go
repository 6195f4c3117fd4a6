package get_tariffs

import (
	"context"

	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

type TariffService interface {
	GetSchedule(ctx context.Context, req *models.GetTariffsRequest) (*models.TariffScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
