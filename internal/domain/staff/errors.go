package staff

import "errors"

var (
	ErrStaffNotFound     = errors.New("staff not found")
	ErrStaffAccessDenied = errors.New("access to this staff record is not allowed")
	ErrStaffExists       = errors.New("user already has a staff record")
)
