package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingFeeService/pkg/types"
)

func testSlot(day time.Weekday, from, to types.TimeString) *TariffSlot {
	return &TariffSlot{
		VehicleType:    VehicleCarHGV,
		RatePlan:       "Hourly",
		DayOfWeek:      day,
		WindowFrom:     from,
		WindowTo:       to,
		EveryMinutes:   30,
		StepFee:        decimal.RequireFromString("1.20"),
		FirstStepFee:   decimal.RequireFromString("1.20"),
		MinCharge:      decimal.Zero,
		MaxCharge:      decimal.RequireFromString("100.00"),
		EffectiveStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTariffSlot_WrapsMidnight(t *testing.T) {
	require.False(t, testSlot(time.Monday, "08:00", "18:00").WrapsMidnight())
	require.True(t, testSlot(time.Monday, "22:00", "06:00").WrapsMidnight())

	// Окно 00:00-00:00 трактуется как полные сутки
	require.True(t, testSlot(time.Monday, "00:00", "00:00").WrapsMidnight())
}

func TestTariffSlot_IsActiveAt(t *testing.T) {
	slot := testSlot(time.Monday, "08:00", "18:00")

	require.False(t, slot.IsActiveAt(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	require.True(t, slot.IsActiveAt(slot.EffectiveStart))
	require.True(t, slot.IsActiveAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	slot.EffectiveEnd = &end
	require.True(t, slot.IsActiveAt(end.Add(-time.Second)))
	require.False(t, slot.IsActiveAt(end))
	require.True(t, slot.IsRetired(end))
}

func TestTariffSlot_OverlapsWindow(t *testing.T) {
	tests := []struct {
		name string
		a    *TariffSlot
		b    *TariffSlot
		want bool
	}{
		{
			name: "disjoint windows",
			a:    testSlot(time.Monday, "08:00", "12:00"),
			b:    testSlot(time.Monday, "12:00", "18:00"),
			want: false,
		},
		{
			name: "overlapping windows",
			a:    testSlot(time.Monday, "08:00", "12:00"),
			b:    testSlot(time.Monday, "11:00", "18:00"),
			want: true,
		},
		{
			name: "wrapped overlaps morning piece",
			a:    testSlot(time.Monday, "22:00", "06:00"),
			b:    testSlot(time.Monday, "05:00", "08:00"),
			want: true,
		},
		{
			name: "wrapped overlaps evening piece",
			a:    testSlot(time.Monday, "22:00", "06:00"),
			b:    testSlot(time.Monday, "21:00", "23:00"),
			want: true,
		},
		{
			name: "wrapped misses middle of day",
			a:    testSlot(time.Monday, "22:00", "06:00"),
			b:    testSlot(time.Monday, "08:00", "18:00"),
			want: false,
		},
		{
			name: "full day overlaps everything",
			a:    testSlot(time.Monday, "00:00", "00:00"),
			b:    testSlot(time.Monday, "13:00", "14:00"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.OverlapsWindow(tt.b))
			require.Equal(t, tt.want, tt.b.OverlapsWindow(tt.a))
		})
	}
}

func TestTariffSlot_ConflictsWith(t *testing.T) {
	base := testSlot(time.Monday, "08:00", "12:00")

	t.Run("same triple overlapping windows", func(t *testing.T) {
		other := testSlot(time.Monday, "11:00", "18:00")
		require.True(t, base.ConflictsWith(other))
	})

	t.Run("different day never conflicts", func(t *testing.T) {
		other := testSlot(time.Tuesday, "08:00", "12:00")
		require.False(t, base.ConflictsWith(other))
	})

	t.Run("different vehicle type never conflicts", func(t *testing.T) {
		other := testSlot(time.Monday, "08:00", "12:00")
		other.VehicleType = VehicleMotorcycle
		require.False(t, base.ConflictsWith(other))
	})

	t.Run("different rate plan never conflicts", func(t *testing.T) {
		other := testSlot(time.Monday, "08:00", "12:00")
		other.RatePlan = "Daily"
		require.False(t, base.ConflictsWith(other))
	})

	t.Run("disjoint effective ranges never conflict", func(t *testing.T) {
		retired := testSlot(time.Monday, "08:00", "12:00")
		end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		retired.EffectiveEnd = &end

		successor := testSlot(time.Monday, "08:00", "12:00")
		successor.EffectiveStart = end

		require.False(t, retired.ConflictsWith(successor))
		require.False(t, successor.ConflictsWith(retired))
	})
}

func TestVehicleType_IsValid(t *testing.T) {
	require.True(t, VehicleCarHGV.IsValid())
	require.True(t, VehicleMotorcycle.IsValid())
	require.True(t, VehicleBus.IsValid())
	require.False(t, VehicleType("Bicycle").IsValid())
	require.False(t, VehicleType("").IsValid())
}
