package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrStaffAccessDenied):
		Forbidden(w, "Access to this staff record is not allowed")
	case errors.Is(err, staff.ErrStaffExists):
		Conflict(w, "User already has a staff record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyApproved):
		Conflict(w, "Leave request already approved")
	case errors.Is(err, leave.ErrInvalidAsOfDate):
		BadRequest(w, "Invalid as_of date", nil)
	case errors.Is(err, leave.ErrInvalidRange), errors.Is(err, leave.ErrInvalidAccrualStart):
		// A stored record violates the date invariants.
		slog.Error("Leave data integrity error", "error", err)
		InternalServerError(w, "Stored leave data is inconsistent")

	// Notification errors
	case errors.Is(err, notification.ErrQueueFull), errors.Is(err, notification.ErrQueueStopped):
		ServiceUnavailable(w, "Message queue is unavailable, try again later")
	case errors.Is(err, notification.ErrNoRecipient):
		BadRequest(w, "Recipient has no email address", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
