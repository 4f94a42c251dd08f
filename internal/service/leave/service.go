package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	staff.StaffRepository
	leave.LeaveRequestRepository
	balance  *BalanceService
	notifier notification.Service
	now      func() time.Time
}

func NewLeaveService(
	staffRepository staff.StaffRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	balanceService *BalanceService,
	notifier notification.Service,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		StaffRepository:        staffRepository,
		LeaveRequestRepository: leaveRequestRepository,
		balance:                balanceService,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// WithClock replaces the source of "today". Used by tests.
func (l *LeaveServiceImpl) WithClock(now func() time.Time) *LeaveServiceImpl {
	l.now = now
	return l
}

// ApplicationForm implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplicationForm(ctx context.Context, actor user.Actor) (leave.ApplicationFormResponse, error) {
	if actor.StaffID == nil {
		return leave.ApplicationFormResponse{}, staff.ErrStaffNotFound
	}

	s, leaves, err := l.staffWithLeaves(ctx, *actor.StaffID)
	if err != nil {
		return leave.ApplicationFormResponse{}, err
	}

	outstanding, err := l.balance.OutstandingLeaveDays(s, leaves, l.today())
	if err != nil {
		return leave.ApplicationFormResponse{}, fmt.Errorf("failed to calculate outstanding leave days: %w", err)
	}

	return leave.ApplicationFormResponse{
		StaffID:         s.ID,
		OutstandingDays: outstanding,
		Fields:          leave.ApplicationFields,
	}, nil
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, actor user.Actor, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	// Non-admins always apply for themselves
	if !actor.IsAdmin || validator.IsEmpty(req.StaffID) {
		if actor.StaffID == nil {
			return leave.LeaveRequestResponse{}, staff.ErrStaffNotFound
		}
		req.StaffID = *actor.StaffID
	}

	request, err := req.Normalize()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !actor.CanApplyFor(request.StaffID) {
		return leave.LeaveRequestResponse{}, staff.ErrStaffAccessDenied
	}

	if _, err := l.StaffRepository.GetByID(ctx, request.StaffID); err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get staff by ID: %w", err)
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// StaffLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) StaffLeaves(ctx context.Context, actor user.Actor, staffID string, asOf time.Time) (leave.LeaveSummaryResponse, error) {
	if !actor.CanViewStaff(staffID) {
		return leave.LeaveSummaryResponse{}, staff.ErrStaffAccessDenied
	}

	if asOf.IsZero() {
		asOf = l.today()
	}

	s, leaves, err := l.staffWithLeaves(ctx, staffID)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}

	balance, err := l.balance.Calculate(s, leaves, asOf)
	if err != nil {
		return leave.LeaveSummaryResponse{}, fmt.Errorf("failed to calculate leave balance: %w", err)
	}

	return leave.LeaveSummaryResponse{
		StaffID:         s.ID,
		StaffName:       s.Name(),
		AsOf:            asOf.Format(validator.DateLayout),
		AccruedDays:     balance.Accrued,
		LeaveDaysTaken:  balance.Taken,
		OutstandingDays: balance.Outstanding,
		Leaves:          leave.NewLeaveRequestResponses(leaves),
	}, nil
}

// ListPending implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPending(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	return l.listByApproval(ctx, actor, false)
}

// ListApproved implements leave.LeaveService.
func (l *LeaveServiceImpl) ListApproved(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	return l.listByApproval(ctx, actor, true)
}

func (l *LeaveServiceImpl) listByApproval(ctx context.Context, actor user.Actor, approved bool) ([]leave.LeaveRequestResponse, error) {
	if !actor.CanViewAdminLists() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	leaves, err := l.LeaveRequestRepository.ListByApproval(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return leave.NewLeaveRequestResponses(leaves), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, actor user.Actor, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !actor.CanApproveLeave() {
		return leave.LeaveRequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approved, err := l.LeaveRequestRepository.Approve(ctx, req.LeaveID, actor.UserID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrLeaveAlreadyApproved) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to approve leave request: %w", err)
	}

	// The approval is committed at this point; notification is best-effort.
	l.notifyStatusChange(ctx, approved)

	return leave.NewLeaveRequestResponse(approved), nil
}

func (l *LeaveServiceImpl) notifyStatusChange(ctx context.Context, request leave.LeaveRequest) {
	if l.notifier == nil {
		return
	}

	s, err := l.StaffRepository.GetByID(ctx, request.StaffID)
	if err != nil {
		slog.Warn("Leave status email skipped: staff lookup failed", "leave_id", request.ID, "staff_id", request.StaffID, "error", err)
		return
	}
	if s.Email() == "" {
		slog.Warn("Leave status email skipped: staff has no email", "leave_id", request.ID, "staff_id", s.ID)
		return
	}

	msg := notification.Message{
		Kind:        notification.KindLeaveStatus,
		To:          s.Email(),
		StaffName:   s.Name(),
		LeaveID:     request.ID,
		LeaveStart:  request.StartDate,
		LeaveEnd:    request.EndDate,
		LeaveReason: request.Reason,
		LeaveStatus: request.Status(),
	}
	if err := l.notifier.Queue(ctx, msg); err != nil {
		slog.Warn("Leave status email not queued", "leave_id", request.ID, "to", msg.To, "error", err)
	}
}

func (l *LeaveServiceImpl) staffWithLeaves(ctx context.Context, staffID string) (staff.Staff, []leave.LeaveRequest, error) {
	s, err := l.StaffRepository.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.Staff{}, nil, err
		}
		return staff.Staff{}, nil, fmt.Errorf("failed to get staff by ID: %w", err)
	}

	leaves, err := l.LeaveRequestRepository.ListByStaffID(ctx, staffID)
	if err != nil {
		return staff.Staff{}, nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return s, leaves, nil
}

func (l *LeaveServiceImpl) today() time.Time {
	return validator.TruncateToDate(l.now())
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
