package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &staffHandlerImpl{staffService: staffService}
}

// Create implements StaffHandler.
func (h *staffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req staff.CreateStaffRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("CreateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.staffService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("CreateStaff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Staff record created", "staff_id", created.ID, "user_id", created.UserID)
	response.Created(w, "Staff record created", created)
}
