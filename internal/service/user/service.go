package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	staff.StaffRepository
	notifier notification.Service
}

func NewUserService(userRepository user.UserRepository, staffRepository staff.StaffRepository, notifier notification.Service) *UserServiceImpl {
	return &UserServiceImpl{
		UserRepository:  userRepository,
		StaffRepository: staffRepository,
		notifier:        notifier,
	}
}

// ListAdmins implements user.UserService.
func (u *UserServiceImpl) ListAdmins(ctx context.Context, actor user.Actor) ([]user.UserResponse, error) {
	if !actor.CanViewAdminLists() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	admins, err := u.UserRepository.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(admins))
	for _, a := range admins {
		responses = append(responses, user.NewUserResponse(a))
	}
	return responses, nil
}

// SendMessage implements user.UserService.
func (u *UserServiceImpl) SendMessage(ctx context.Context, actor user.Actor, req user.SendMessageRequest) error {
	if !actor.IsAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return err
	}

	s, err := u.StaffRepository.GetByID(ctx, strings.TrimSpace(req.StaffID))
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return err
		}
		return fmt.Errorf("failed to get staff by ID: %w", err)
	}

	msg := notification.Message{
		Kind:      notification.KindGeneralMessage,
		To:        s.Email(),
		StaffName: s.Name(),
		Subject:   strings.TrimSpace(req.Subject),
		Content:   req.Content,
	}
	if err := u.notifier.Queue(ctx, msg); err != nil {
		return fmt.Errorf("failed to queue message: %w", err)
	}

	return nil
}

var _ user.UserService = (*UserServiceImpl)(nil)
