package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/shared/logger"
)

// DeliveryStatus is the terminal state of a dispatch attempt.
type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "sent"
	StatusSimulated DeliveryStatus = "simulated"
	StatusFailed    DeliveryStatus = "failed"
)

// Message is a single outbound notification.
type Message struct {
	Recipient string
	Subject   string
	HTMLBody  string
	TicketID  *uint
	Kind      notification.EventKind
}

// Outcome reports what happened to a Message. Attempts counts actual SMTP
// attempts, so validation failures report zero.
type Outcome struct {
	Status   DeliveryStatus
	Attempts int
	Err      error
}

func (o Outcome) Delivered() bool {
	return o.Status == StatusSent || o.Status == StatusSimulated
}

type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Dispatcher sends notification mail over SMTP with bounded retries. When
// delivery is disabled it simulates success without touching the network.
// Every terminal outcome is written to the delivery audit trail best-effort.
type Dispatcher struct {
	cfg        *config.EmailConfig
	sender     smtpSender
	auditRepo  notification.DeliveryRecordRepository
	logger     logger.Interface
	retryDelay time.Duration
}

func NewDispatcher(
	cfg *config.EmailConfig,
	auditRepo notification.DeliveryRecordRepository,
	log logger.Interface,
) *Dispatcher {
	d := &Dispatcher{
		cfg:        cfg,
		auditRepo:  auditRepo,
		logger:     log.Named("email"),
		retryDelay: cfg.RetryDelay(),
	}

	if cfg.Enabled && d.configComplete() {
		dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		if cfg.UseTLS {
			dialer.SSL = true
		} else {
			dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
		}
		d.sender = dialer
	}

	return d
}

// newDispatcherWithSender is the test seam: it bypasses dialer construction.
func newDispatcherWithSender(
	cfg *config.EmailConfig,
	sender smtpSender,
	auditRepo notification.DeliveryRecordRepository,
	log logger.Interface,
	retryDelay time.Duration,
) *Dispatcher {
	return &Dispatcher{
		cfg:        cfg,
		sender:     sender,
		auditRepo:  auditRepo,
		logger:     log.Named("email"),
		retryDelay: retryDelay,
	}
}

func (d *Dispatcher) configComplete() bool {
	return d.cfg.SMTPHost != "" && d.cfg.SMTPPort != 0 &&
		d.cfg.SMTPUser != "" && d.cfg.SMTPPassword != ""
}

// Send delivers msg and returns the terminal outcome. It never panics and
// never returns a half-finished state: the outcome's Status is always one of
// sent, simulated or failed.
func (d *Dispatcher) Send(ctx context.Context, msg Message) Outcome {
	outcome := d.send(ctx, msg)
	d.audit(ctx, msg, outcome)

	switch outcome.Status {
	case StatusSent:
		d.logger.Infow("email sent",
			"recipient", msg.Recipient, "kind", msg.Kind, "attempts", outcome.Attempts)
	case StatusSimulated:
		d.logger.Infow("email simulated (delivery disabled)",
			"recipient", msg.Recipient, "kind", msg.Kind)
	case StatusFailed:
		d.logger.Errorw("email delivery failed",
			"recipient", msg.Recipient, "kind", msg.Kind,
			"attempts", outcome.Attempts, "error", outcome.Err)
	}

	return outcome
}

func (d *Dispatcher) send(ctx context.Context, msg Message) Outcome {
	if !d.cfg.Enabled {
		return Outcome{Status: StatusSimulated}
	}

	if !strings.Contains(msg.Recipient, "@") {
		return Outcome{Status: StatusFailed, Err: ErrInvalidRecipient}
	}

	if !d.configComplete() || d.sender == nil {
		return Outcome{Status: StatusFailed, Err: ErrMisconfigured}
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.cfg.FromAddress, d.cfg.FromName)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	var lastErr error
	attempts := 0
	for attempts < d.cfg.MaxRetries {
		if attempts > 0 {
			if err := d.wait(ctx); err != nil {
				return Outcome{
					Status:   StatusFailed,
					Attempts: attempts,
					Err:      fmt.Errorf("%w: %w", ErrDeliveryFailed, err),
				}
			}
		}

		attempts++
		err := d.sender.DialAndSend(m)
		if err == nil {
			return Outcome{Status: StatusSent, Attempts: attempts}
		}
		lastErr = err

		if terminal := classifySendError(err); terminal != nil {
			return Outcome{
				Status:   StatusFailed,
				Attempts: attempts,
				Err:      fmt.Errorf("%w: %w", terminal, err),
			}
		}

		d.logger.Warnw("email attempt failed, will retry",
			"recipient", msg.Recipient, "attempt", attempts, "error", err)
	}

	return Outcome{
		Status:   StatusFailed,
		Attempts: attempts,
		Err:      fmt.Errorf("%w: %w", ErrDeliveryFailed, lastErr),
	}
}

func (d *Dispatcher) wait(ctx context.Context) error {
	timer := time.NewTimer(d.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// audit records the terminal outcome. Audit failures are logged and dropped:
// the outcome already reached the caller and a broken audit trail must not
// turn a delivered email into an error.
func (d *Dispatcher) audit(ctx context.Context, msg Message, outcome Outcome) {
	if d.auditRepo == nil {
		return
	}

	errorText := ""
	if outcome.Err != nil {
		errorText = outcome.Err.Error()
	}

	record := notification.NewDeliveryRecord(
		msg.Recipient,
		msg.Subject,
		msg.HTMLBody,
		msg.TicketID,
		msg.Kind,
		outcome.Delivered(),
		outcome.Status == StatusSimulated,
		outcome.Attempts,
		errorText,
		deliveryDetails(outcome),
	)

	if err := d.auditRepo.Save(ctx, record); err != nil {
		d.logger.Warnw("failed to write email audit record",
			"recipient", msg.Recipient, "kind", msg.Kind, "error", err)
	}
}

// deliveryDetails flattens an outcome into the structured audit payload,
// unwrapping the error chain outermost-first.
func deliveryDetails(outcome Outcome) *notification.DeliveryDetails {
	return &notification.DeliveryDetails{
		Status:     string(outcome.Status),
		ErrorChain: appendErrorChain(nil, outcome.Err),
	}
}

func appendErrorChain(chain []string, err error) []string {
	if err == nil {
		return chain
	}
	chain = append(chain, err.Error())
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		chain = appendErrorChain(chain, u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, wrapped := range u.Unwrap() {
			chain = appendErrorChain(chain, wrapped)
		}
	}
	return chain
}
