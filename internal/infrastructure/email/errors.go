package email

import (
	"errors"
	"net/textproto"
	"strings"
)

var (
	// ErrMisconfigured indicates delivery was requested while the SMTP
	// settings are incomplete (missing host or from address).
	ErrMisconfigured = errors.New("email: smtp configuration incomplete")

	// ErrInvalidRecipient indicates the recipient address is not deliverable
	// and no send attempt was made.
	ErrInvalidRecipient = errors.New("email: invalid recipient address")

	// ErrAuthenticationFailed indicates the SMTP server rejected our
	// credentials. Retrying with the same credentials cannot succeed.
	ErrAuthenticationFailed = errors.New("email: smtp authentication failed")

	// ErrRecipientRefused indicates the SMTP server rejected the recipient
	// mailbox. Retrying the same recipient cannot succeed.
	ErrRecipientRefused = errors.New("email: recipient refused by server")

	// ErrDeliveryFailed indicates all retry attempts were exhausted.
	ErrDeliveryFailed = errors.New("email: delivery failed after retries")

	// ErrQueueFull indicates the dispatch queue had no room for the message.
	ErrQueueFull = errors.New("email: dispatch queue full")

	// ErrQueueClosed indicates the dispatch queue is shut down.
	ErrQueueClosed = errors.New("email: dispatch queue closed")
)

// classifySendError maps a raw SMTP error to one of the terminal sentinel
// errors, or returns nil when the failure is transient and worth retrying.
func classifySendError(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return ErrAuthenticationFailed
		case 550, 551, 553:
			return ErrRecipientRefused
		}
		return nil
	}

	// gomail wraps some auth failures without a textproto error.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "auth") && strings.Contains(msg, "fail") {
		return ErrAuthenticationFailed
	}
	return nil
}
