package leave

import "errors"

// Validation rules of a leave application.
var (
	ErrMissingReason    = errors.New("reason for leave is required")
	ErrMissingStartDate = errors.New("leave start date is required")
	ErrMissingEndDate   = errors.New("leave end date is required")
	ErrInvalidDateOrder = errors.New("leave end date must be after leave start date")
)

// Range errors point at malformed stored data.
var (
	ErrInvalidRange        = errors.New("invalid date range: start after end")
	ErrInvalidAsOfDate     = errors.New("invalid as-of date")
	ErrInvalidAccrualStart = errors.New("staff has no accrual start reference")
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveAlreadyApproved = errors.New("leave request already approved")
)
