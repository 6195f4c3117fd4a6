package calculate_fee

import (
	"time"

	calculateFee "github.com/m04kA/SMC-ParkingFeeService/internal/usecase/calculate_fee"
)

// CalculateFeeRequest HTTP request model
type CalculateFeeRequest struct {
	EntryTime     string  `json:"entryTime"` // RFC 3339, UTC
	ExitTime      string  `json:"exitTime"`  // RFC 3339, UTC
	VehicleType   string  `json:"vehicleType"`
	RatePlan      string  `json:"ratePlan"`
	RateModelHint *string `json:"rateModelHint,omitempty"` // на расчёт не влияет
}

// FeeResponse HTTP response model
type FeeResponse struct {
	TotalFee  string `json:"totalFee"` // строка с двумя знаками, чтобы клиент не терял точность
	Currency  string `json:"currency"`
	RatePlan  string `json:"ratePlan"`
	RateModel string `json:"rateModel"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CalculateFeeRequest) ToUseCaseRequest() (*calculateFee.Request, error) {
	entryTime, err := time.Parse(time.RFC3339, r.EntryTime)
	if err != nil {
		return nil, err
	}

	exitTime, err := time.Parse(time.RFC3339, r.ExitTime)
	if err != nil {
		return nil, err
	}

	return &calculateFee.Request{
		EntryTime:     entryTime,
		ExitTime:      exitTime,
		VehicleType:   r.VehicleType,
		RatePlan:      r.RatePlan,
		RateModelHint: r.RateModelHint,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculateFee.Response) *FeeResponse {
	return &FeeResponse{
		TotalFee:  resp.TotalFee.StringFixed(2),
		Currency:  resp.Currency,
		RatePlan:  resp.RatePlan,
		RateModel: string(resp.RateModel),
	}
}
