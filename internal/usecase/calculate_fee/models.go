package calculate_fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// Request модель запроса на расчёт платы за парковку
type Request struct {
	EntryTime   time.Time
	ExitTime    time.Time
	VehicleType string
	RatePlan    string

	// RateModelHint подсказка клиента; на расчёт не влияет,
	// модель всегда определяется заново по каталогу
	RateModelHint *string
}

// Response результат расчёта
type Response struct {
	TotalFee  decimal.Decimal
	Currency  string
	RatePlan  string           // каноническое имя плана из каталога
	RateModel domain.RateModel // независимо вычисленная модель
	Segments  []domain.Segment // разбиение, по которому посчитан итог
}
