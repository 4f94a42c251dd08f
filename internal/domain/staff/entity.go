package staff

import "time"

// Staff is an employee record. CreatedAt is the zero point for leave accrual,
// StartWorkDate is kept for display only.
type Staff struct {
	ID            string
	UserID        string
	StartWorkDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships (for responses)
	UserName  *string
	UserEmail *string
}

// Name returns the account name or an empty string when it was not joined.
func (s Staff) Name() string {
	if s.UserName == nil {
		return ""
	}
	return *s.UserName
}

// Email returns the account email or an empty string when it was not joined.
func (s Staff) Email() string {
	if s.UserEmail == nil {
		return ""
	}
	return *s.UserEmail
}
