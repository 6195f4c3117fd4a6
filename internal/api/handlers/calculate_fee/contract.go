package calculate_fee

import (
	"context"

	calculateFee "github.com/m04kA/SMC-ParkingFeeService/internal/usecase/calculate_fee"
)

type CalculateFeeUseCase interface {
	Execute(ctx context.Context, req *calculateFee.Request) (*calculateFee.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
