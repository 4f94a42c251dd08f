package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedLeave(id string, approved bool) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:         id,
		StaffID:    "staff-1",
		Reason:     "family",
		StartDate:  date(2018, 12, 7),
		EndDate:    date(2018, 12, 14),
		IsApproved: approved,
	}
}

func newBalance() *BalanceService {
	return NewBalanceService(NewAccrualCalculator(DefaultDaysPerMonth))
}

func TestBalanceService_TotalLeaveDaysTaken_ThreeApproved(t *testing.T) {
	leaves := []leave.LeaveRequest{
		approvedLeave("l1", true),
		approvedLeave("l2", true),
		approvedLeave("l3", true),
	}

	got, err := newBalance().TotalLeaveDaysTaken(leaves)
	require.NoError(t, err)
	assert.Equal(t, 18, got)
}

func TestBalanceService_TotalLeaveDaysTaken_IgnoresPending(t *testing.T) {
	leaves := []leave.LeaveRequest{
		approvedLeave("l1", true),
		approvedLeave("l2", false),
	}

	got, err := newBalance().TotalLeaveDaysTaken(leaves)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestBalanceService_TotalLeaveDaysTaken_Idempotent(t *testing.T) {
	leaves := []leave.LeaveRequest{approvedLeave("l1", true), approvedLeave("l2", true)}
	b := newBalance()

	first, err := b.TotalLeaveDaysTaken(leaves)
	require.NoError(t, err)
	second, err := b.TotalLeaveDaysTaken(leaves)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, leaves[0].IsApproved)
}

func TestBalanceService_TotalLeaveDaysTaken_MalformedRecord(t *testing.T) {
	bad := approvedLeave("broken", true)
	bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate

	_, err := newBalance().TotalLeaveDaysTaken([]leave.LeaveRequest{bad})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
	assert.Contains(t, err.Error(), "broken")
}

func TestBalanceService_OutstandingLeaveDays_WorkedExample(t *testing.T) {
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))
	leaves := []leave.LeaveRequest{approvedLeave("l1", true)}

	balance, err := newBalance().Calculate(s, leaves, date(2019, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, "10.5", balance.Accrued.String())
	assert.Equal(t, 6, balance.Taken)
	assert.Equal(t, "4.5", balance.Outstanding.String())

	outstanding, err := newBalance().OutstandingLeaveDays(s, leaves, date(2019, 1, 1))
	require.NoError(t, err)
	assert.True(t, balance.Outstanding.Equal(outstanding))
}

func TestBalanceService_OutstandingLeaveDays_MayBeNegative(t *testing.T) {
	s := staffCreatedAt(date(2018, 10, 1), date(2018, 10, 1))
	leaves := []leave.LeaveRequest{approvedLeave("l1", true), approvedLeave("l2", true)}

	outstanding, err := newBalance().OutstandingLeaveDays(s, leaves, date(2019, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "-9", outstanding.String())
}

func TestBalanceService_OutstandingLeaveDays_InvalidAsOf(t *testing.T) {
	s := staffCreatedAt(date(2018, 5, 1), date(2018, 6, 1))

	_, err := newBalance().Calculate(s, nil, time.Time{})
	assert.ErrorIs(t, err, leave.ErrInvalidAsOfDate)
}
