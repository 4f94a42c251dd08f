package notification

import "time"

type Kind string

const (
	KindLeaveStatus    Kind = "leave_status"
	KindGeneralMessage Kind = "general_message"
)

// Message is one queued outbound email.
type Message struct {
	Kind Kind
	To   string

	// general_message
	Subject string
	Content string

	// leave_status
	StaffName   string
	LeaveID     string
	LeaveStart  time.Time
	LeaveEnd    time.Time
	LeaveReason string
	LeaveStatus string

	QueuedAt time.Time
}
