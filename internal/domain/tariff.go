package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingFeeService/pkg/types"
)

// VehicleType represents the vehicle classification used by the entry stations
type VehicleType string

const (
	VehicleCarHGV     VehicleType = "Car/HGV"
	VehicleMotorcycle VehicleType = "Motorcycle"
	VehicleBus        VehicleType = "Bus"
)

// AllVehicleTypes список всех поддерживаемых типов транспорта
var AllVehicleTypes = []VehicleType{
	VehicleCarHGV,
	VehicleMotorcycle,
	VehicleBus,
}

// IsValid returns true if the vehicle type is one of the known classifications
func (v VehicleType) IsValid() bool {
	for _, known := range AllVehicleTypes {
		if v == known {
			return true
		}
	}
	return false
}

// TariffSlot represents a priced rule: how parking time is billed for a
// vehicle type under a rate plan, on a given day of week and time window.
// A window with WindowTo <= WindowFrom wraps past midnight.
type TariffSlot struct {
	ID          int64
	VehicleType VehicleType
	RatePlan    string
	DayOfWeek   time.Weekday
	WindowFrom  types.TimeString
	WindowTo    types.TimeString

	EveryMinutes int             // шаг тарификации в минутах
	StepFee      decimal.Decimal // цена за шаг
	FirstStepFee decimal.Decimal // цена первого шага сессии (может отличаться)
	GraceMinutes int             // бесплатные минуты в начале сессии
	MinCharge    decimal.Decimal
	MaxCharge    decimal.Decimal

	// Версионирование: слот действует в [EffectiveStart, EffectiveEnd)
	// EffectiveEnd == nil означает открытый диапазон
	EffectiveStart time.Time
	EffectiveEnd   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WrapsMidnight returns true if the time window crosses local midnight
func (s *TariffSlot) WrapsMidnight() bool {
	return s.WindowTo.Minutes() <= s.WindowFrom.Minutes()
}

// IsActiveAt returns true if the slot's effective range contains t
func (s *TariffSlot) IsActiveAt(t time.Time) bool {
	if t.Before(s.EffectiveStart) {
		return false
	}
	if s.EffectiveEnd != nil && !t.Before(*s.EffectiveEnd) {
		return false
	}
	return true
}

// IsRetired returns true if the slot has a closed effective range ending at or before t
func (s *TariffSlot) IsRetired(t time.Time) bool {
	return s.EffectiveEnd != nil && !t.Before(*s.EffectiveEnd)
}

// windowPieces returns the window as minute intervals within a single day,
// [from, to) pairs over 0..1440. A wrapped window yields two pieces.
func (s *TariffSlot) windowPieces() [][2]int {
	from := s.WindowFrom.Minutes()
	to := s.WindowTo.Minutes()
	if from < to {
		return [][2]int{{from, to}}
	}
	pieces := [][2]int{{from, MinutesPerDay}}
	if to > 0 {
		pieces = append(pieces, [2]int{0, to})
	}
	return pieces
}

// OverlapsWindow проверяет пересечение временных окон двух слотов одного дня недели
// Используется при проверке инварианта уникальности тарифа
func (s *TariffSlot) OverlapsWindow(other *TariffSlot) bool {
	for _, a := range s.windowPieces() {
		for _, b := range other.windowPieces() {
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}

// OverlapsEffectiveRange проверяет пересечение диапазонов действия двух слотов
func (s *TariffSlot) OverlapsEffectiveRange(other *TariffSlot) bool {
	if s.EffectiveEnd != nil && !other.EffectiveStart.Before(*s.EffectiveEnd) {
		return false
	}
	if other.EffectiveEnd != nil && !s.EffectiveStart.Before(*other.EffectiveEnd) {
		return false
	}
	return true
}

// ConflictsWith returns true if both slots are for the same
// (vehicle type, rate plan, day of week) triple and their active windows overlap
func (s *TariffSlot) ConflictsWith(other *TariffSlot) bool {
	if s.VehicleType != other.VehicleType || s.RatePlan != other.RatePlan || s.DayOfWeek != other.DayOfWeek {
		return false
	}
	return s.OverlapsEffectiveRange(other) && s.OverlapsWindow(other)
}
