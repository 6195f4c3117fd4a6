package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:30", want: "08:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "8:30", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "12:60", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	require.Equal(t, 0, TimeString("00:00").Minutes())
	require.Equal(t, 510, TimeString("08:30").Minutes())
	require.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(510)
	require.NoError(t, err)
	require.Equal(t, TimeString("08:30"), got)

	got, err = NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	require.Equal(t, TimeString("00:00"), got)

	_, err = NewTimeStringFromMinutes(-1)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(1440)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:30").AddMinutes(45)
	require.NoError(t, err)
	require.Equal(t, TimeString("09:15"), got)

	// Перенос за пределы суток запрещен
	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Ordering(t *testing.T) {
	require.True(t, TimeString("08:00").IsBefore("09:00"))
	require.False(t, TimeString("09:00").IsBefore("08:00"))
	require.True(t, TimeString("09:00").IsAfter("08:00"))
	require.False(t, TimeString("08:00").IsAfter("08:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("08:30"))
	require.Equal(t, TimeString("08:30"), ts)

	// TIME колонка отдаёт секунды, они отбрасываются
	require.NoError(t, ts.Scan("22:00:00"))
	require.Equal(t, TimeString("22:00"), ts)

	require.NoError(t, ts.Scan([]byte("06:15")))
	require.Equal(t, TimeString("06:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 2, 14, 45, 0, 0, time.UTC)))
	require.Equal(t, TimeString("14:45"), ts)

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:30").Value()
	require.NoError(t, err)
	require.Equal(t, "08:30", v)

	_, err = TimeString("junk").Value()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}
