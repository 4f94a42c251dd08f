package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// BalanceService aggregates a staff member's leave history into accrued,
// taken and outstanding figures. It works on snapshots and never writes.
type BalanceService struct {
	accrual *AccrualCalculator
}

func NewBalanceService(accrual *AccrualCalculator) *BalanceService {
	return &BalanceService{accrual: accrual}
}

// Balance is the result of one aggregation.
type Balance struct {
	Accrued     decimal.Decimal
	Taken       int
	Outstanding decimal.Decimal
}

// TotalLeaveDaysTaken sums the weekdays of every approved leave. Overlapping
// approved ranges are each counted in full.
func (b *BalanceService) TotalLeaveDaysTaken(leaves []leave.LeaveRequest) (int, error) {
	total := 0
	for _, l := range leaves {
		if !l.IsApproved {
			continue
		}
		days, err := CountWeekdays(l.StartDate, l.EndDate)
		if err != nil {
			return 0, fmt.Errorf("leave %s: %w", l.ID, err)
		}
		total += days
	}
	return total, nil
}

// OutstandingLeaveDays is accrued minus taken. The result may be negative.
func (b *BalanceService) OutstandingLeaveDays(s staff.Staff, leaves []leave.LeaveRequest, asOfDate time.Time) (decimal.Decimal, error) {
	balance, err := b.Calculate(s, leaves, asOfDate)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Outstanding, nil
}

func (b *BalanceService) Calculate(s staff.Staff, leaves []leave.LeaveRequest, asOfDate time.Time) (Balance, error) {
	accrued, err := b.accrual.AccruedDays(s, asOfDate)
	if err != nil {
		return Balance{}, err
	}

	taken, err := b.TotalLeaveDaysTaken(leaves)
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		Accrued:     accrued,
		Taken:       taken,
		Outstanding: accrued.Sub(decimal.NewFromInt(int64(taken))),
	}, nil
}
