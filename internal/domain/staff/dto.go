package staff

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type CreateStaffRequest struct {
	UserID        string `json:"user_id"`
	StartWorkDate string `json:"start_work_date"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.StartWorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_work_date",
			Message: "start_work_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StaffResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	StartWorkDate string  `json:"start_work_date"`
	CreatedAt     string  `json:"created_at"`
}

func NewStaffResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.UserName,
		Email:         s.UserEmail,
		StartWorkDate: s.StartWorkDate.Format(validator.DateLayout),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
