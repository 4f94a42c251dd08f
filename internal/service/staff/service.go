package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type StaffServiceImpl struct {
	staff.StaffRepository
	user.UserRepository
}

func NewStaffService(staffRepository staff.StaffRepository, userRepository user.UserRepository) *StaffServiceImpl {
	return &StaffServiceImpl{
		StaffRepository: staffRepository,
		UserRepository:  userRepository,
	}
}

// Create implements staff.StaffService. The new record's creation time starts leave accrual.
func (s *StaffServiceImpl) Create(ctx context.Context, actor user.Actor, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if !actor.IsAdmin {
		return staff.StaffResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	startWorkDate, _ := validator.IsValidDate(req.StartWorkDate)
	userID := strings.TrimSpace(req.UserID)

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return staff.StaffResponse{}, err
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if _, err := s.StaffRepository.GetByUserID(ctx, userID); err == nil {
		return staff.StaffResponse{}, staff.ErrStaffExists
	} else if !errors.Is(err, staff.ErrStaffNotFound) {
		return staff.StaffResponse{}, fmt.Errorf("failed to get staff by user ID: %w", err)
	}

	created, err := s.StaffRepository.Create(ctx, staff.Staff{
		UserID:        userID,
		StartWorkDate: startWorkDate,
	})
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff: %w", err)
	}
	created.UserName = &account.Name
	created.UserEmail = &account.Email

	return staff.NewStaffResponse(created), nil
}

var _ staff.StaffService = (*StaffServiceImpl)(nil)
