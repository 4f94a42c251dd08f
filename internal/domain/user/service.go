package user

import "context"

type UserService interface {
	ListAdmins(ctx context.Context, actor Actor) ([]UserResponse, error)
	SendMessage(ctx context.Context, actor Actor, req SendMessageRequest) error
}
