package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	StaffID *string
}

// Actor is the authenticated principal behind a request.
type Actor struct {
	UserID  string
	Email   string
	StaffID *string
	IsAdmin bool
}

// CanApproveLeave reports whether the actor may flip a leave to approved.
func (a Actor) CanApproveLeave() bool {
	return a.IsAdmin
}

// CanViewAdminLists covers the pending/approved leave lists and the admin directory.
func (a Actor) CanViewAdminLists() bool {
	return a.IsAdmin
}

// CanViewStaff reports whether the actor may read the leave summary of staffID.
func (a Actor) CanViewStaff(staffID string) bool {
	if a.IsAdmin {
		return true
	}
	return a.OwnsStaff(staffID)
}

// CanApplyFor reports whether the actor may submit leave on behalf of staffID.
func (a Actor) CanApplyFor(staffID string) bool {
	return a.CanViewStaff(staffID)
}

// OwnsStaff checks if staffID is the actor's own staff record.
func (a Actor) OwnsStaff(staffID string) bool {
	return a.StaffID != nil && *a.StaffID == staffID
}
