package leave

import (
	"context"
)

// LeaveRequestRepository - interface for staff_leaves table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByStaffID(ctx context.Context, staffID string) ([]LeaveRequest, error)
	ListByApproval(ctx context.Context, approved bool) ([]LeaveRequest, error)
	// Approve flips is_approved from false to true atomically.
	Approve(ctx context.Context, id string, approvedBy string) (LeaveRequest, error)
}
