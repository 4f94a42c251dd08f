package leave

import "time"

const (
	StatusApproved        = "Approved"
	StatusPendingApproval = "Pending Approval"
)

// LeaveRequest is one leave application. StartDate and EndDate are
// calendar days, both inclusive.
type LeaveRequest struct {
	ID         string
	StaffID    string
	Reason     string
	StartDate  time.Time
	EndDate    time.Time
	IsApproved bool
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships (for responses)
	StaffName *string
}

// Status is the display label of the approval flag.
func (l LeaveRequest) Status() string {
	if l.IsApproved {
		return StatusApproved
	}
	return StatusPendingApproval
}
