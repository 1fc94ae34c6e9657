// Package submit delivers a validated contact form.
package submit

import (
	"context"
	"time"

	"github.com/h0rv/showcase/internal/logger"
)

// DefaultDelay is how long the simulated submission takes.
const DefaultDelay = 2000 * time.Millisecond

// Copy shown to the user around a submission.
const (
	LabelIdle    = "Send Message"
	LabelSending = "Sending..."

	SuccessBanner = `<h5>Message Sent Successfully!</h5>` +
		`<p>Thank you for contacting us. We'll get back to you soon!</p>`
	SuccessToast  = "Message sent successfully!"
	FailureBanner = "Failed to send message. Please try again later."
	FailureToast  = "Failed to send message"
	InvalidBanner = "Please correct the errors below."
)

// Submitter delivers form values keyed by field name.
type Submitter interface {
	Submit(ctx context.Context, values map[string]string) error
}

// Simulated pretends to deliver the form: it waits Delay and succeeds.
type Simulated struct {
	Delay time.Duration
	Log   *logger.Logger
}

// NewSimulated creates a Simulated submitter with the default delay.
func NewSimulated(log *logger.Logger) *Simulated {
	return &Simulated{Delay: DefaultDelay, Log: log}
}

// Submit waits for the configured delay. A cancelled ctx aborts the wait and
// its error is returned.
func (s *Simulated) Submit(ctx context.Context, values map[string]string) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.Log.Error(ctx.Err(), "form submission aborted")
		return ctx.Err()
	case <-timer.C:
	}

	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}
	s.Log.WithFields(fields).Info("form submitted")
	return nil
}
