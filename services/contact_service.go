// File: services/contact_service.go
package services

import (
	"context"
	"time"

	"wanderlust/logger"
	"wanderlust/metrics"
	"wanderlust/models"
)

const (
	MsgContactRequired = "Name, email, and message are required"
	MsgContactThanks   = "Thank you for your message. We'll get back to you soon!"
)

// Mailer delivers a contact message to the site operators.
type Mailer interface {
	Deliver(ctx context.Context, req models.ContactRequest) error
}

// LogMailer writes the message to the operational log and waits a fixed delay in place of
// a real mail hand-off.
type LogMailer struct {
	Delay time.Duration
}

func (m LogMailer) Deliver(ctx context.Context, req models.ContactRequest) error {
	logger.Info.Printf("[LogMailer] contact from %s <%s>: %s", req.Name, req.Email, req.Message)
	if m.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ContactService validates and delivers contact form submissions.
type ContactService struct {
	mailer  Mailer
	metrics metrics.Publisher
}

func NewContactService(mailer Mailer, publisher metrics.Publisher) *ContactService {
	if publisher == nil {
		publisher = metrics.Noop{}
	}
	return &ContactService{mailer: mailer, metrics: publisher}
}

// Submit rejects incomplete requests before any delivery happens.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	if !req.Complete() {
		return &ValidationError{Message: MsgContactRequired}
	}
	if err := s.mailer.Deliver(ctx, req); err != nil {
		logger.Error.Printf("[ContactService.Submit] delivery failed: %v", err)
		return &TransportError{Op: "deliver contact message", Err: err}
	}
	s.metrics.Count(ctx, "ContactSubmissions", nil)
	return nil
}
