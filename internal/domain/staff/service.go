package staff

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type StaffService interface {
	Create(ctx context.Context, actor user.Actor, req CreateStaffRequest) (StaffResponse, error)
}
