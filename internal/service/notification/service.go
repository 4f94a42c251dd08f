package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	mailer email.EmailService
	config Config

	queue   chan notification.Message
	wg      sync.WaitGroup
	stopCh  chan struct{}
	mu      sync.RWMutex
	stopped bool
	once    sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(mailer email.EmailService, cfg Config) notification.Service {
	// Set defaults
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		mailer: mailer,
		config: cfg,
		queue:  make(chan notification.Message, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// worker delivers queued messages until Stop, then drains what is left.
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case msg := <-s.queue:
			s.deliver(id, msg)
		case <-s.stopCh:
			for {
				select {
				case msg := <-s.queue:
					s.deliver(id, msg)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(workerID int, msg notification.Message) {
	var err error
	switch msg.Kind {
	case notification.KindLeaveStatus:
		err = s.mailer.SendLeaveStatus(msg.To, email.LeaveStatusData{
			StaffName: msg.StaffName,
			StartDate: formatDate(msg.LeaveStart),
			EndDate:   formatDate(msg.LeaveEnd),
			Reason:    msg.LeaveReason,
			Status:    msg.LeaveStatus,
		})
	case notification.KindGeneralMessage:
		err = s.mailer.SendGeneralMessage(msg.To, email.GeneralMessageData{
			StaffName: msg.StaffName,
			Subject:   msg.Subject,
			Content:   msg.Content,
		})
	default:
		err = fmt.Errorf("%w: %s", notification.ErrUnknownKind, msg.Kind)
	}

	if err != nil {
		slog.Error("Notification delivery failed",
			"worker", workerID,
			"kind", msg.Kind,
			"to", msg.To,
			"queued_for", time.Since(msg.QueuedAt).String(),
			"error", err,
		)
		return
	}
	slog.Debug("Notification delivered", "worker", workerID, "kind", msg.Kind, "to", msg.To)
}

// Queue hands msg to the workers without blocking.
func (s *service) Queue(ctx context.Context, msg notification.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return notification.ErrNoRecipient
	}
	if msg.Kind != notification.KindLeaveStatus && msg.Kind != notification.KindGeneralMessage {
		return fmt.Errorf("%w: %s", notification.ErrUnknownKind, msg.Kind)
	}
	if msg.QueuedAt.IsZero() {
		msg.QueuedAt = time.Now()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return notification.ErrQueueStopped
	}

	select {
	case s.queue <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return notification.ErrQueueFull
	}
}

// Stop rejects new messages, delivers everything already queued and waits for the workers.
func (s *service) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.mu.Unlock()

		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validator.DateLayout)
}
