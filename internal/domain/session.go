package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingSession describes a single stay to be priced: the entry/exit pair
// reported by the stations plus the classification the caller requests.
// Sessions are transient, the engine never persists them.
type ParkingSession struct {
	EntryTime   time.Time
	ExitTime    time.Time
	VehicleType VehicleType
	RatePlan    string
}

// Duration returns the raw session duration
func (s *ParkingSession) Duration() time.Duration {
	return s.ExitTime.Sub(s.EntryTime)
}

// Segment is a sub-interval of a session covered by exactly one tariff slot.
// Segments produced by the splitter partition [entry, exit) with no gaps or overlaps.
type Segment struct {
	Start time.Time
	End   time.Time
	Slot  *TariffSlot
}

// Duration returns the exact segment length
// Entry/exit timestamps are second-precision, so segment edges are too
func (s *Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// FeeResult is the authoritative outcome of a fee calculation
type FeeResult struct {
	TotalFee  decimal.Decimal
	Currency  string
	RatePlan  string    // canonical plan name from the catalog
	RateModel RateModel // independently resolved, never the client's hint

	// Segment breakdown the total was computed from; kept for logging,
	// not exposed on the API boundary
	Segments []Segment
}
