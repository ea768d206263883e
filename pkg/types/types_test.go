package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Parse(t *testing.T) {
	ts, err := NewTimeStringFromString("9:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), ts)

	ts, err = NewTimeStringFromString("10:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	_, err = NewTimeStringFromString("25:99")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := MustTimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), next)

	end, err := MustTimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = MustTimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("09:00").IsBefore("09:30"))
	assert.True(t, MustTimeString("10:00").IsAfter("09:59"))
	assert.False(t, MustTimeString("10:00").IsAfter("10:00"))
	assert.True(t, MustTimeString("23:30").IsBefore("24:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:30"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestDate_WeekdayAndScan(t *testing.T) {
	d, err := NewDateFromString("2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Weekday())

	sunday, err := NewDateFromString("2025-10-19")
	require.NoError(t, err)
	assert.Equal(t, 7, sunday.Weekday())

	var scanned Date
	require.NoError(t, scanned.Scan("2025-10-13T00:00:00Z"))
	assert.True(t, scanned.Equal(d))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", v)
}

func TestCents_Decimal(t *testing.T) {
	assert.Equal(t, "510.00", Cents(51000).Decimal())
	assert.Equal(t, "0.05", Cents(5).Decimal())
	assert.Equal(t, "-1.50", Cents(-150).Decimal())
}
