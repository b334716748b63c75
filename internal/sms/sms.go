// Package sms exposes a minimal interface for sending SMS messages
// and the Twilio-backed implementation used in production.
package sms

import (
	"context"

	"github.com/cyberalexander/messengerio/internal/domain/message"
)

// Sender is the contract for anything that can hand an SMS to a transport.
type Sender interface {
	// SendMessage dispatches req. It reports true when the transport accepted
	// the message and false when it did not. A non-nil error means the call
	// itself failed (network, authentication, rejected parameters).
	SendMessage(ctx context.Context, req message.Request) (bool, error)
}

// HealthChecker is implemented by senders that can verify their provider
// credentials without sending anything.
type HealthChecker interface {
	Health(ctx context.Context) error
}
