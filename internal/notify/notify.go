// Package notify sends participant email notifications.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Profile is the sender snapshot included in a team-up notification.
type Profile struct {
	Name       string
	Email      string
	Department string
	Year       string
	Phone      string
	Skills     []string
}

// Notifier delivers notifications. Implementations must be safe for concurrent use.
type Notifier interface {
	// RegistrationConfirmed confirms a first registration to the participant.
	RegistrationConfirmed(ctx context.Context, to, name string) error
	// ConnectionRequested tells toName that from wants to team up.
	ConnectionRequested(ctx context.Context, to, toName string, from Profile) error
	// Broadcast sends one message to every recipient without exposing the list.
	Broadcast(ctx context.Context, to []string, subject, message string) error
}

// Nop discards every notification.
type Nop struct{}

// RegistrationConfirmed implements Notifier.
func (Nop) RegistrationConfirmed(context.Context, string, string) error { return nil }

// ConnectionRequested implements Notifier.
func (Nop) ConnectionRequested(context.Context, string, string, Profile) error { return nil }

// Broadcast implements Notifier.
func (Nop) Broadcast(context.Context, []string, string, string) error { return nil }

// DefaultTimeout bounds a background send.
const DefaultTimeout = 30 * time.Second

// Background runs send in its own goroutine with a timeout detached from the
// request context. Failures are logged and otherwise ignored. The returned
// channel is closed when the send finishes.
func Background(logger *zap.SugaredLogger, what string, send func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			logger.Warnw("notification not sent", "notification", what, "error", err)
			return
		}
		logger.Debugw("notification sent", "notification", what)
	}()
	return done
}
