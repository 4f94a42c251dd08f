package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffCreatedAt(createdAt, startWork time.Time) staff.Staff {
	return staff.Staff{
		ID:            "staff-1",
		UserID:        "user-1",
		StartWorkDate: startWork,
		CreatedAt:     createdAt,
	}
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		from time.Time
		to   time.Time
		want int
	}{
		{date(2018, 5, 1), date(2019, 1, 1), 8},
		{date(2018, 6, 1), date(2019, 1, 1), 7},
		{date(2018, 5, 15), date(2018, 6, 14), 0},
		{date(2018, 5, 15), date(2018, 6, 15), 1},
		{date(2019, 1, 1), date(2018, 5, 1), 0},
		{date(2018, 1, 31), date(2018, 2, 28), 0},
		{date(2018, 1, 1), date(2018, 1, 1), 0},
	}
	for _, c := range cases {
		got := MonthsBetween(c.from, c.to)
		assert.Equal(t, c.want, got, "MonthsBetween(%s, %s)", c.from.Format("2006-01-02"), c.to.Format("2006-01-02"))
	}
}

func TestAccrualCalculator_WorkedExample(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))

	got, err := calc.AccruedDays(s, date(2019, 1, 1))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.5").Equal(got), "got %s", got)
}

func TestAccrualCalculator_UsesCreatedAtNotStartWorkDate(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)
	asOf := date(2019, 1, 1)

	early := staffCreatedAt(date(2018, 5, 1), date(2018, 11, 1))
	late := staffCreatedAt(date(2018, 10, 1), date(2018, 5, 1))

	earlyDays, err := calc.AccruedDays(early, asOf)
	require.NoError(t, err)
	lateDays, err := calc.AccruedDays(late, asOf)
	require.NoError(t, err)

	assert.Equal(t, "10.5", earlyDays.String())
	assert.Equal(t, "3", lateDays.String())
}

func TestAccrualCalculator_ClockOfCreatedAtIsIgnored(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)
	s := staffCreatedAt(time.Date(2018, 5, 1, 17, 45, 12, 0, time.UTC), date(2018, 6, 1))

	got, err := calc.AccruedDays(s, date(2019, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "10.5", got.String())
}

func TestAccrualCalculator_PartialMonthsDoNotAccrue(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)
	s := staffCreatedAt(date(2018, 5, 20), date(2018, 5, 20))

	cases := map[time.Time]string{
		date(2018, 5, 31): "0",
		date(2018, 6, 30): "0",
		date(2018, 7, 1):  "1.5",
		date(2018, 7, 31): "1.5",
		date(2018, 8, 1):  "3",
	}
	for asOf, want := range cases {
		got, err := calc.AccruedDays(s, asOf)
		require.NoError(t, err)
		assert.Equal(t, want, got.String(), "as of %s", asOf.Format("2006-01-02"))
	}
}

func TestAccrualCalculator_AsOfBeforeReferenceIsZero(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))

	got, err := calc.AccruedDays(s, date(2017, 1, 1))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestAccrualCalculator_InvalidInputs(t *testing.T) {
	calc := NewAccrualCalculator(DefaultDaysPerMonth)

	_, err := calc.AccruedDays(staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1)), time.Time{})
	assert.ErrorIs(t, err, leave.ErrInvalidAsOfDate)

	_, err = calc.AccruedDays(staffCreatedAt(time.Time{}, date(2018, 6, 1)), date(2019, 1, 1))
	assert.ErrorIs(t, err, leave.ErrInvalidAccrualStart)
}

func TestNewAccrualCalculator_NonPositiveRateFallsBack(t *testing.T) {
	calc := NewAccrualCalculator(decimal.Zero)
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))

	got, err := calc.AccruedDays(s, date(2018, 8, 1))
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())
}

func TestNewAccrualCalculator_CustomRate(t *testing.T) {
	calc := NewAccrualCalculator(decimal.RequireFromString("2"))
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))

	got, err := calc.AccruedDays(s, date(2019, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "14", got.String())
}
