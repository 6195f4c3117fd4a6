package calculate_fee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/types"
)

// 2025-06-02 - понедельник
var (
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	friday   = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
)

func makeSlot(id int64, day time.Weekday, from, to types.TimeString) *domain.TariffSlot {
	return &domain.TariffSlot{
		ID:             id,
		VehicleType:    domain.VehicleCarHGV,
		RatePlan:       "Hourly",
		DayOfWeek:      day,
		WindowFrom:     from,
		WindowTo:       to,
		EveryMinutes:   30,
		StepFee:        decimal.RequireFromString("1.20"),
		FirstStepFee:   decimal.RequireFromString("1.20"),
		GraceMinutes:   10,
		MinCharge:      decimal.Zero,
		MaxCharge:      decimal.RequireFromString("100.00"),
		EffectiveStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// requirePartition проверяет, что сегменты точно покрывают [entry, exit):
// смежные, без дыр и наложений
func requirePartition(t *testing.T, segments []domain.Segment, entry, exit time.Time) {
	t.Helper()
	require.NotEmpty(t, segments)
	require.True(t, segments[0].Start.Equal(entry))
	require.True(t, segments[len(segments)-1].End.Equal(exit))
	for i := 1; i < len(segments); i++ {
		require.True(t, segments[i].Start.Equal(segments[i-1].End),
			"gap or overlap between segments %d and %d", i-1, i)
	}

	var total time.Duration
	for i := range segments {
		require.True(t, segments[i].End.After(segments[i].Start))
		total += segments[i].Duration()
	}
	require.Equal(t, exit.Sub(entry), total)
}

func TestSplitSession_SingleDay(t *testing.T) {
	slot := makeSlot(1, time.Monday, "00:00", "00:00")
	entry := monday.Add(8 * time.Hour)
	exit := monday.Add(10*time.Hour + 5*time.Minute)

	segments, err := splitSession(entry, exit, []*domain.TariffSlot{slot}, time.UTC)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Same(t, slot, segments[0].Slot)
	requirePartition(t, segments, entry, exit)
}

func TestSplitSession_MidnightBoundary(t *testing.T) {
	fridaySlot := makeSlot(1, time.Friday, "00:00", "00:00")
	saturdaySlot := makeSlot(2, time.Saturday, "00:00", "00:00")
	entry := friday.Add(23*time.Hour + 50*time.Minute)
	exit := saturday.Add(10 * time.Minute)

	segments, err := splitSession(entry, exit, []*domain.TariffSlot{fridaySlot, saturdaySlot}, time.UTC)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	requirePartition(t, segments, entry, exit)

	// Граница сегментов ровно на местной полуночи
	require.Same(t, fridaySlot, segments[0].Slot)
	require.True(t, segments[0].End.Equal(saturday))
	require.Same(t, saturdaySlot, segments[1].Slot)
}

func TestSplitSession_WrappedWindowCoversEarlyMorning(t *testing.T) {
	// Пятничное окно 22:00-06:00 тарифицирует и субботнее утро
	nightSlot := makeSlot(1, time.Friday, "22:00", "06:00")
	entry := friday.Add(23 * time.Hour)
	exit := saturday.Add(3 * time.Hour)

	segments, err := splitSession(entry, exit, []*domain.TariffSlot{nightSlot}, time.UTC)
	require.NoError(t, err)
	requirePartition(t, segments, entry, exit)
	for i := range segments {
		require.Same(t, nightSlot, segments[i].Slot)
	}
}

func TestSplitSession_WrappedWindowCoversSessionStart(t *testing.T) {
	// Сессия целиком в субботнем утре, но тариф задан пятничным окном через полночь
	nightSlot := makeSlot(1, time.Friday, "22:00", "06:00")
	entry := saturday.Add(1 * time.Hour)
	exit := saturday.Add(4 * time.Hour)

	segments, err := splitSession(entry, exit, []*domain.TariffSlot{nightSlot}, time.UTC)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Same(t, nightSlot, segments[0].Slot)
	requirePartition(t, segments, entry, exit)
}

func TestSplitSession_MultipleWindowsSameDay(t *testing.T) {
	daySlot := makeSlot(1, time.Monday, "06:00", "18:00")
	eveningSlot := makeSlot(2, time.Monday, "18:00", "23:00")
	entry := monday.Add(17 * time.Hour)
	exit := monday.Add(20 * time.Hour)

	segments, err := splitSession(entry, exit, []*domain.TariffSlot{daySlot, eveningSlot}, time.UTC)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	requirePartition(t, segments, entry, exit)
	require.Same(t, daySlot, segments[0].Slot)
	require.True(t, segments[0].End.Equal(monday.Add(18*time.Hour)))
	require.Same(t, eveningSlot, segments[1].Slot)
}

func TestSplitSession_NoApplicableTariff(t *testing.T) {
	slot := makeSlot(1, time.Monday, "08:00", "12:00")

	t.Run("uncovered session start", func(t *testing.T) {
		_, err := splitSession(monday.Add(7*time.Hour), monday.Add(9*time.Hour),
			[]*domain.TariffSlot{slot}, time.UTC)
		require.ErrorIs(t, err, ErrNoApplicableTariff)
	})

	t.Run("uncovered session tail", func(t *testing.T) {
		_, err := splitSession(monday.Add(11*time.Hour), monday.Add(13*time.Hour),
			[]*domain.TariffSlot{slot}, time.UTC)
		require.ErrorIs(t, err, ErrNoApplicableTariff)
	})

	t.Run("no slots at all", func(t *testing.T) {
		_, err := splitSession(monday.Add(8*time.Hour), monday.Add(9*time.Hour), nil, time.UTC)
		require.ErrorIs(t, err, ErrNoApplicableTariff)
	})
}

func TestSplitSession_AmbiguousTariff(t *testing.T) {
	first := makeSlot(1, time.Monday, "08:00", "12:00")
	second := makeSlot(2, time.Monday, "10:00", "14:00")

	// Наложение окон обнаруживается, даже если сессия началась до него
	_, err := splitSession(monday.Add(9*time.Hour), monday.Add(11*time.Hour),
		[]*domain.TariffSlot{first, second}, time.UTC)
	require.ErrorIs(t, err, ErrAmbiguousTariff)
}

func TestSplitSession_InvalidInterval(t *testing.T) {
	slot := makeSlot(1, time.Monday, "00:00", "00:00")

	_, err := splitSession(monday.Add(10*time.Hour), monday.Add(10*time.Hour),
		[]*domain.TariffSlot{slot}, time.UTC)
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = splitSession(monday.Add(10*time.Hour), monday.Add(9*time.Hour),
		[]*domain.TariffSlot{slot}, time.UTC)
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestSplitSession_MultiDayPartition(t *testing.T) {
	slots := make([]*domain.TariffSlot, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		slots = append(slots, makeSlot(int64(d)+1, d, "00:00", "00:00"))
	}

	entry := monday.Add(14*time.Hour + 30*time.Minute)
	exit := entry.Add(72*time.Hour + 45*time.Minute)

	segments, err := splitSession(entry, exit, slots, time.UTC)
	require.NoError(t, err)
	require.Len(t, segments, 4)
	requirePartition(t, segments, entry, exit)

	// Каждый сегмент тарифицируется слотом своего дня недели
	for i := range segments {
		require.Equal(t, segments[i].Start.Weekday(), segments[i].Slot.DayOfWeek)
	}
}
