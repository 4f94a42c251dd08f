package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ApplicationForm(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	StaffLeaves(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListApproved(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ApplicationForm implements LeaveHandler.
func (h *leaveHandlerImpl) ApplicationForm(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	form, err := h.leaveService.ApplicationForm(r.Context(), actor)
	if err != nil {
		slog.Error("ApplicationForm service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, form)
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApplyLeaveRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Apply(r.Context(), actor, req)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "leave_id", created.ID, "staff_id", created.StaffID)
	response.Redirect(w, fmt.Sprintf("/staff/%s/leaves", created.StaffID), "Leave request submitted", created)
}

// StaffLeaves implements LeaveHandler.
func (h *leaveHandlerImpl) StaffLeaves(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	staffID := chi.URLParam(r, "id")

	var asOf time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "as_of",
				Message: "as_of must be a valid date (YYYY-MM-DD)",
				Rule:    leave.ErrInvalidAsOfDate,
			}})
			return
		}
		asOf = parsed
	}

	summary, err := h.leaveService.StaffLeaves(r.Context(), actor, staffID, asOf)
	if err != nil {
		slog.Error("StaffLeaves service error", "error", err, "staff_id", staffID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := h.leaveService.ListPending(r.Context(), actor)
	if err != nil {
		slog.Error("ListPending service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// ListApproved implements LeaveHandler.
func (h *leaveHandlerImpl) ListApproved(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := h.leaveService.ListApproved(r.Context(), actor)
	if err != nil {
		slog.Error("ListApproved service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApproveLeaveRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("Approve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approved, err := h.leaveService.Approve(r.Context(), actor, req)
	if err != nil {
		slog.Error("Approve service error", "error", err, "leave_id", req.LeaveID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request approved", "leave_id", approved.ID, "approved_by", actor.UserID)
	response.Redirect(w, "/leaves/approved", "Leave request approved", approved)
}
