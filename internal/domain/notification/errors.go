package notification

import "errors"

var (
	ErrQueueFull    = errors.New("notification queue is full")
	ErrQueueStopped = errors.New("notification queue is stopped")
	ErrNoRecipient  = errors.New("notification has no recipient")
	ErrUnknownKind  = errors.New("unknown notification kind")
)
