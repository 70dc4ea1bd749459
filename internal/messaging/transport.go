package messaging

import (
	"context"
	"errors"
	"fmt"
)

// SendResult holds the provider's acknowledgment of an outbound message
type SendResult struct {
	// ExternalMessageID is the provider-assigned message SID
	ExternalMessageID string
	// Status is the provider's initial delivery status (queued, sent, ...)
	Status string
}

// ErrSendFailed wraps transport-level delivery failures so callers can
// distinguish them from programming errors
var ErrSendFailed = errors.New("message send failed")

// SendError carries the provider error detail for a failed send
type SendError struct {
	To     string
	Code   int
	Detail string
}

func (e *SendError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("message send failed: %s (code %d)", e.Detail, e.Code)
	}
	return fmt.Sprintf("message send failed: %s", e.Detail)
}

func (e *SendError) Unwrap() error {
	return ErrSendFailed
}

// Transport sends WhatsApp messages to a phone number. Implementations must
// be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, to, body string) (*SendResult, error)
}
