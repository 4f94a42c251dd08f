package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ApplyLeaveRequest struct {
	StaffID   string `json:"staff_id"`
	Reason    string `json:"reason_for_leave"`
	StartDate string `json:"leave_start_date"`
	EndDate   string `json:"leave_end_date"`
}

func (r *ApplyLeaveRequest) Validate() error {
	_, err := r.Normalize()
	return err
}

// Normalize checks every rule and, when all pass, returns the record ready
// for persistence. Failures are collected, not reported first-only.
func (r *ApplyLeaveRequest) Normalize() (LeaveRequest, error) {
	var errs validator.ValidationErrors

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason_for_leave",
			Message: "reason_for_leave is required",
			Rule:    ErrMissingReason,
		})
	}

	// Dates
	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_start_date",
			Message: "leave_start_date is required and must be a valid date",
			Rule:    ErrMissingStartDate,
		})
	}
	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_end_date",
			Message: "leave_end_date is required and must be a valid date",
			Rule:    ErrMissingEndDate,
		})
	}
	if startOK && endOK && !endDate.After(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_end_date",
			Message: "leave_end_date must be after leave_start_date",
			Rule:    ErrInvalidDateOrder,
		})
	}

	if len(errs) > 0 {
		return LeaveRequest{}, errs
	}

	return LeaveRequest{
		StaffID:   strings.TrimSpace(r.StaffID),
		Reason:    strings.TrimSpace(r.Reason),
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

type ApproveLeaveRequest struct {
	LeaveID string `json:"leave_id"`
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_id",
			Message: "leave_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID         string  `json:"id"`
	StaffID    string  `json:"staff_id"`
	StaffName  *string `json:"staff_name,omitempty"`
	Reason     string  `json:"reason_for_leave"`
	StartDate  string  `json:"leave_start_date"`
	EndDate    string  `json:"leave_end_date"`
	IsApproved bool    `json:"is_approved"`
	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:         l.ID,
		StaffID:    l.StaffID,
		StaffName:  l.StaffName,
		Reason:     l.Reason,
		StartDate:  l.StartDate.Format(validator.DateLayout),
		EndDate:    l.EndDate.Format(validator.DateLayout),
		IsApproved: l.IsApproved,
		Status:     l.Status(),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		approvedAt := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func NewLeaveRequestResponses(leaves []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, NewLeaveRequestResponse(l))
	}
	return responses
}

// LeaveSummaryResponse is the per-staff leave page.
type LeaveSummaryResponse struct {
	StaffID         string                 `json:"staff_id"`
	StaffName       string                 `json:"staff_name,omitempty"`
	AsOf            string                 `json:"as_of"`
	AccruedDays     decimal.Decimal        `json:"accrued_days"`
	LeaveDaysTaken  int                    `json:"leave_days_taken"`
	OutstandingDays decimal.Decimal        `json:"outstanding_days"`
	Leaves          []LeaveRequestResponse `json:"leaves"`
}

type ApplicationFormResponse struct {
	StaffID         string          `json:"staff_id"`
	OutstandingDays decimal.Decimal `json:"outstanding_days"`
	Fields          []string        `json:"fields"`
}

// ApplicationFields lists the inputs expected by POST /leave.
var ApplicationFields = []string{"reason_for_leave", "leave_start_date", "leave_end_date"}
