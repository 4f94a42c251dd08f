package notification

import (
	"context"
)

// Service queues outbound messages for background delivery.
type Service interface {
	Queue(ctx context.Context, msg Message) error
	// Stop drains the queue and waits for in-flight deliveries.
	Stop()
}
