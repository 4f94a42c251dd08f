package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu       sync.Mutex
	statuses []email.LeaveStatusData
	messages []email.GeneralMessageData
	to       []string
	block    chan struct{}
	err      error
}

func (f *fakeMailer) SendLeaveStatus(to string, data email.LeaveStatusData) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, data)
	f.to = append(f.to, to)
	return f.err
}

func (f *fakeMailer) SendGeneralMessage(to string, data email.GeneralMessageData) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, data)
	f.to = append(f.to, to)
	return f.err
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statuses) + len(f.messages)
}

func leaveStatusMessage(to string) notification.Message {
	return notification.Message{
		Kind:        notification.KindLeaveStatus,
		To:          to,
		StaffName:   "Jane",
		LeaveID:     "leave-1",
		LeaveStart:  time.Date(2018, 12, 7, 0, 0, 0, 0, time.UTC),
		LeaveEnd:    time.Date(2018, 12, 14, 0, 0, 0, 0, time.UTC),
		LeaveReason: "family",
		LeaveStatus: "Approved",
	}
}

func TestService_DeliversBothKinds(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewNotificationService(mailer, Config{WorkerCount: 1, QueueSize: 10})

	require.NoError(t, svc.Queue(context.Background(), leaveStatusMessage("jane@example.com")))
	require.NoError(t, svc.Queue(context.Background(), notification.Message{
		Kind:    notification.KindGeneralMessage,
		To:      "jane@example.com",
		Subject: "Hello",
		Content: "World",
	}))
	svc.Stop()

	require.Len(t, mailer.statuses, 1)
	require.Len(t, mailer.messages, 1)
	assert.Equal(t, "2018-12-07", mailer.statuses[0].StartDate)
	assert.Equal(t, "2018-12-14", mailer.statuses[0].EndDate)
	assert.Equal(t, "Approved", mailer.statuses[0].Status)
	assert.Equal(t, "Hello", mailer.messages[0].Subject)
}

func TestService_StopDrainsQueue(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	svc := NewNotificationService(mailer, Config{WorkerCount: 1, QueueSize: 10})

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Queue(context.Background(), leaveStatusMessage("jane@example.com")))
	}
	close(mailer.block)
	svc.Stop()

	assert.Equal(t, 5, mailer.count())
}

func TestService_QueueFull(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	svc := NewNotificationService(mailer, Config{WorkerCount: 1, QueueSize: 1})

	var full error
	for i := 0; i < 5 && full == nil; i++ {
		full = svc.Queue(context.Background(), leaveStatusMessage("jane@example.com"))
	}
	assert.ErrorIs(t, full, notification.ErrQueueFull)

	close(mailer.block)
	svc.Stop()
}

func TestService_QueueAfterStop(t *testing.T) {
	svc := NewNotificationService(&fakeMailer{}, Config{})
	svc.Stop()
	svc.Stop()

	err := svc.Queue(context.Background(), leaveStatusMessage("jane@example.com"))
	assert.ErrorIs(t, err, notification.ErrQueueStopped)
}

func TestService_RejectsBadMessages(t *testing.T) {
	svc := NewNotificationService(&fakeMailer{}, Config{})
	defer svc.Stop()

	err := svc.Queue(context.Background(), leaveStatusMessage(" "))
	assert.ErrorIs(t, err, notification.ErrNoRecipient)

	err = svc.Queue(context.Background(), notification.Message{Kind: "sms", To: "jane@example.com"})
	assert.ErrorIs(t, err, notification.ErrUnknownKind)
}

func TestService_DeliveryFailureDoesNotStopWorker(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewNotificationService(mailer, Config{WorkerCount: 1, QueueSize: 10})

	require.NoError(t, svc.Queue(context.Background(), leaveStatusMessage("a@example.com")))
	require.NoError(t, svc.Queue(context.Background(), leaveStatusMessage("b@example.com")))
	svc.Stop()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.to)
}
