package calculate_fee

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EntryTime.IsZero() || req.ExitTime.IsZero() {
		return fmt.Errorf("%w: entry and exit times are required", ErrInvalidInterval)
	}

	if !req.ExitTime.After(req.EntryTime) {
		return ErrInvalidInterval
	}

	if !domain.VehicleType(req.VehicleType).IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownVehicleType, req.VehicleType)
	}

	return nil
}
