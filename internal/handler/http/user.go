package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Home(w http.ResponseWriter, r *http.Request)
	ListAdmins(w http.ResponseWriter, r *http.Request)
	SendMessage(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
	homePath    string
}

func NewUserHandler(userService user.UserService, homePath string) UserHandler {
	return &userHandlerImpl{
		userService: userService,
		homePath:    homePath,
	}
}

type homeResponse struct {
	UserID  string  `json:"user_id"`
	Email   string  `json:"email"`
	StaffID *string `json:"staff_id,omitempty"`
	IsAdmin bool    `json:"is_admin"`
}

// Home implements UserHandler.
func (h *userHandlerImpl) Home(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, homeResponse{
		UserID:  actor.UserID,
		Email:   actor.Email,
		StaffID: actor.StaffID,
		IsAdmin: actor.IsAdmin,
	})
}

// ListAdmins implements UserHandler.
func (h *userHandlerImpl) ListAdmins(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	admins, err := h.userService.ListAdmins(r.Context(), actor)
	if err != nil {
		slog.Error("ListAdmins service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, admins)
}

// SendMessage implements UserHandler.
func (h *userHandlerImpl) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.SendMessageRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("SendMessage decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.SendMessage(r.Context(), actor, req); err != nil {
		slog.Error("SendMessage service error", "error", err, "staff_id", req.StaffID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Message queued", "staff_id", req.StaffID, "sent_by", actor.UserID)
	response.Redirect(w, h.homePath, "Message queued", nil)
}
