package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DefaultDaysPerMonth is the leave earned per complete month of tenure.
var DefaultDaysPerMonth = decimal.RequireFromString("1.5")

type AccrualCalculator struct {
	daysPerMonth decimal.Decimal
}

func NewAccrualCalculator(daysPerMonth decimal.Decimal) *AccrualCalculator {
	if !daysPerMonth.IsPositive() {
		daysPerMonth = DefaultDaysPerMonth
	}
	return &AccrualCalculator{daysPerMonth: daysPerMonth}
}

// AccruedDays returns daysPerMonth times the whole months of tenure at asOfDate.
//
// Tenure is counted from the staff record's creation, not from StartWorkDate.
// The month the record was created in does not accrue: counting starts on the
// first day of the following month, so a record created 2018-05-01 has 7 whole
// months on 2019-01-01.
func (c *AccrualCalculator) AccruedDays(s staff.Staff, asOfDate time.Time) (decimal.Decimal, error) {
	if asOfDate.IsZero() {
		return decimal.Zero, leave.ErrInvalidAsOfDate
	}
	if s.CreatedAt.IsZero() {
		return decimal.Zero, leave.ErrInvalidAccrualStart
	}

	months := MonthsBetween(AccrualStart(s), asOfDate)
	return c.daysPerMonth.Mul(decimal.NewFromInt(int64(months))), nil
}

// AccrualStart is the first day of the month after the staff record was created.
func AccrualStart(s staff.Staff) time.Time {
	created := validator.TruncateToDate(s.CreatedAt)
	return time.Date(created.Year(), created.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts complete calendar months from from to to, by day.
// May 1 to Jan 1 of the next year is 8. Never negative.
func MonthsBetween(from, to time.Time) int {
	from = validator.TruncateToDate(from)
	to = validator.TruncateToDate(to)

	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())

	totalMonths := years*12 + months

	// Adjust if day hasn't passed yet
	if to.Day() < from.Day() {
		totalMonths--
	}

	if totalMonths < 0 {
		totalMonths = 0
	}

	return totalMonths
}
