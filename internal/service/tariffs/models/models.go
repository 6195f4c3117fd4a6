package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном имени дня недели
	ErrInvalidWeekday = errors.New("invalid day of week")

	// ErrInvalidMoney возвращается при некорректной денежной сумме
	ErrInvalidMoney = errors.New("invalid money amount")

	// ErrInvalidSlot возвращается при некорректном определении слота
	ErrInvalidSlot = errors.New("invalid tariff slot definition")
)

// Request модели

// SlotPayload полное определение тарифного слота с административной границы
// Дни недели, окна и суммы приходят строками и валидируются здесь,
// дальше по пути расчёта ходят только типизированные значения
type SlotPayload struct {
	VehicleType    string  `json:"vehicleType"`
	RatePlan       string  `json:"ratePlan"`
	DayOfWeek      string  `json:"dayOfWeek"`  // "Monday"
	WindowFrom     string  `json:"windowFrom"` // "HH:MM"
	WindowTo       string  `json:"windowTo"`   // "HH:MM"; windowTo <= windowFrom - окно через полночь
	EveryMinutes   int     `json:"everyMinutes"`
	StepFee        string  `json:"stepFee"`
	FirstStepFee   string  `json:"firstStepFee"`
	GraceMinutes   int     `json:"graceMinutes"`
	MinCharge      string  `json:"minCharge"`
	MaxCharge      string  `json:"maxCharge"`
	EffectiveStart string  `json:"effectiveStart"`          // RFC 3339
	EffectiveEnd   *string `json:"effectiveEnd,omitempty"`  // RFC 3339, null - открытый диапазон
}

// GetTariffsRequest запрос на чтение расписания тарифного плана
type GetTariffsRequest struct {
	RatePlan    string
	VehicleType *string
	AsOf        *time.Time // nil - сейчас
}

// RetireSlotRequest запрос на закрытие диапазона действия слота
type RetireSlotRequest struct {
	EffectiveEnd *string `json:"effectiveEnd,omitempty"` // RFC 3339, null - сейчас
}

// ToDomainSlot валидирует payload и конвертирует его в типизированный слот
func (p *SlotPayload) ToDomainSlot() (*domain.TariffSlot, error) {
	vehicleType := domain.VehicleType(p.VehicleType)
	if !vehicleType.IsValid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidSlot, p.VehicleType)
	}

	canonicalPlan, _, err := domain.ResolveRateModel(p.RatePlan)
	if err != nil {
		return nil, err
	}

	dayOfWeek, err := ToDomainWeekday(p.DayOfWeek)
	if err != nil {
		return nil, err
	}

	windowFrom, err := types.NewTimeStringFromString(p.WindowFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: windowFrom: %v", ErrInvalidSlot, err)
	}
	windowTo, err := types.NewTimeStringFromString(p.WindowTo)
	if err != nil {
		return nil, fmt.Errorf("%w: windowTo: %v", ErrInvalidSlot, err)
	}

	if p.EveryMinutes < domain.MinEveryMinutes || p.EveryMinutes > domain.MaxEveryMinutes {
		return nil, fmt.Errorf("%w: everyMinutes must be in [%d, %d]",
			ErrInvalidSlot, domain.MinEveryMinutes, domain.MaxEveryMinutes)
	}
	if p.GraceMinutes < domain.MinGraceMinutes || p.GraceMinutes > domain.MaxGraceMinutes {
		return nil, fmt.Errorf("%w: graceMinutes must be in [%d, %d]",
			ErrInvalidSlot, domain.MinGraceMinutes, domain.MaxGraceMinutes)
	}

	stepFee, err := parseMoney("stepFee", p.StepFee)
	if err != nil {
		return nil, err
	}
	firstStepFee, err := parseMoney("firstStepFee", p.FirstStepFee)
	if err != nil {
		return nil, err
	}
	minCharge, err := parseMoney("minCharge", p.MinCharge)
	if err != nil {
		return nil, err
	}
	maxCharge, err := parseMoney("maxCharge", p.MaxCharge)
	if err != nil {
		return nil, err
	}
	if maxCharge.LessThan(minCharge) {
		return nil, fmt.Errorf("%w: maxCharge is less than minCharge", ErrInvalidSlot)
	}

	effectiveStart, err := time.Parse(time.RFC3339, p.EffectiveStart)
	if err != nil {
		return nil, fmt.Errorf("%w: effectiveStart: expected RFC 3339", ErrInvalidSlot)
	}

	var effectiveEnd *time.Time
	if p.EffectiveEnd != nil {
		end, err := time.Parse(time.RFC3339, *p.EffectiveEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: effectiveEnd: expected RFC 3339", ErrInvalidSlot)
		}
		if !end.After(effectiveStart) {
			return nil, fmt.Errorf("%w: effectiveEnd must be after effectiveStart", ErrInvalidSlot)
		}
		effectiveEnd = &end
	}

	return &domain.TariffSlot{
		VehicleType:    vehicleType,
		RatePlan:       canonicalPlan,
		DayOfWeek:      dayOfWeek,
		WindowFrom:     windowFrom,
		WindowTo:       windowTo,
		EveryMinutes:   p.EveryMinutes,
		StepFee:        stepFee,
		FirstStepFee:   firstStepFee,
		GraceMinutes:   p.GraceMinutes,
		MinCharge:      minCharge,
		MaxCharge:      maxCharge,
		EffectiveStart: effectiveStart,
		EffectiveEnd:   effectiveEnd,
	}, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %q", ErrInvalidMoney, field, value)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", ErrInvalidMoney, field)
	}
	return amount, nil
}

// Response модели

// SlotResponse ответ с данными тарифного слота
type SlotResponse struct {
	ID             int64   `json:"id"`
	VehicleType    string  `json:"vehicleType"`
	RatePlan       string  `json:"ratePlan"`
	DayOfWeek      string  `json:"dayOfWeek"`
	WindowFrom     string  `json:"windowFrom"`
	WindowTo       string  `json:"windowTo"`
	EveryMinutes   int     `json:"everyMinutes"`
	StepFee        string  `json:"stepFee"`
	FirstStepFee   string  `json:"firstStepFee"`
	GraceMinutes   int     `json:"graceMinutes"`
	MinCharge      string  `json:"minCharge"`
	MaxCharge      string  `json:"maxCharge"`
	EffectiveStart string  `json:"effectiveStart"`
	EffectiveEnd   *string `json:"effectiveEnd,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// DaySchedule слоты одного дня недели
type DaySchedule struct {
	DayOfWeek string         `json:"dayOfWeek"`
	Slots     []SlotResponse `json:"slots"`
}

// TariffScheduleResponse расписание тарифного плана, сгруппированное по дням недели
type TariffScheduleResponse struct {
	RatePlan  string        `json:"ratePlan"`
	RateModel string        `json:"rateModel"`
	AsOf      string        `json:"asOf"`
	Days      []DaySchedule `json:"days"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TariffSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:             s.ID,
		VehicleType:    string(s.VehicleType),
		RatePlan:       s.RatePlan,
		DayOfWeek:      FromDomainWeekday(s.DayOfWeek),
		WindowFrom:     s.WindowFrom.String(),
		WindowTo:       s.WindowTo.String(),
		EveryMinutes:   s.EveryMinutes,
		StepFee:        s.StepFee.StringFixed(2),
		FirstStepFee:   s.FirstStepFee.StringFixed(2),
		GraceMinutes:   s.GraceMinutes,
		MinCharge:      s.MinCharge.StringFixed(2),
		MaxCharge:      s.MaxCharge.StringFixed(2),
		EffectiveStart: s.EffectiveStart.Format(time.RFC3339),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}

	if s.EffectiveEnd != nil {
		endStr := s.EffectiveEnd.Format(time.RFC3339)
		resp.EffectiveEnd = &endStr
	}

	return resp
}

// GroupByWeekday группирует слоты по дням недели, все семь дней всегда присутствуют
func GroupByWeekday(slots []*domain.TariffSlot) []DaySchedule {
	days := make([]DaySchedule, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[int(d)] = DaySchedule{
			DayOfWeek: FromDomainWeekday(d),
			Slots:     []SlotResponse{},
		}
	}

	for _, slot := range slots {
		if resp := FromDomainSlot(slot); resp != nil {
			days[int(slot.DayOfWeek)].Slots = append(days[int(slot.DayOfWeek)].Slots, *resp)
		}
	}

	return days
}

// ToDomainWeekday конвертирует имя дня недели в time.Weekday с валидацией
func ToDomainWeekday(name string) (time.Weekday, error) {
	for i, known := range domain.WeekdayNames {
		if known == name {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// FromDomainWeekday конвертирует time.Weekday в имя для API
func FromDomainWeekday(d time.Weekday) string {
	return domain.WeekdayNames[int(d)%7]
}
