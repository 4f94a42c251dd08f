package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type LeaveService interface {
	ApplicationForm(ctx context.Context, actor user.Actor) (ApplicationFormResponse, error)
	Apply(ctx context.Context, actor user.Actor, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	StaffLeaves(ctx context.Context, actor user.Actor, staffID string, asOf time.Time) (LeaveSummaryResponse, error)
	ListPending(ctx context.Context, actor user.Actor) ([]LeaveRequestResponse, error)
	ListApproved(ctx context.Context, actor user.Actor) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, actor user.Actor, req ApproveLeaveRequest) (LeaveRequestResponse, error)
}
