package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeSender struct {
	calls  int
	sendFn func() error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.calls++
	return f.sendFn()
}

type fakeAuditRepo struct {
	records []*notification.DeliveryRecord
	saveErr error
}

func (f *fakeAuditRepo) Save(ctx context.Context, record *notification.DeliveryRecord) error {
	f.records = append(f.records, record)
	return f.saveErr
}

func (f *fakeAuditRepo) ListByTicketID(ctx context.Context, ticketID uint) ([]*notification.DeliveryRecord, error) {
	return f.records, nil
}

func enabledConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Enabled:      true,
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "mailer",
		SMTPPassword: "secret",
		FromName:     "Helpdesk",
		FromAddress:  "helpdesk@example.com",
		MaxRetries:   3,
	}
}

func testMessage() Message {
	id := uint(5)
	return Message{
		Recipient: "client@example.com",
		Subject:   "subject",
		HTMLBody:  "<p>body</p>",
		TicketID:  &id,
		Kind:      notification.EventTicketCreated,
	}
}

func TestDispatcher_SimulatedWhenDisabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.Enabled = false
	sender := &fakeSender{sendFn: func() error { return nil }}
	audit := &fakeAuditRepo{}

	d := newDispatcherWithSender(cfg, sender, audit, testLogger(), 0)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusSimulated, outcome.Status)
	assert.Equal(t, 0, outcome.Attempts)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, 0, sender.calls, "no network traffic in simulated mode")

	require.Len(t, audit.records, 1)
	assert.True(t, audit.records[0].Simulated)
	assert.True(t, audit.records[0].Success)
}

func TestDispatcher_InvalidRecipient(t *testing.T) {
	sender := &fakeSender{sendFn: func() error { return nil }}
	audit := &fakeAuditRepo{}
	d := newDispatcherWithSender(enabledConfig(), sender, audit, testLogger(), 0)

	msg := testMessage()
	msg.Recipient = "not-an-address"
	outcome := d.Send(context.Background(), msg)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 0, outcome.Attempts)
	assert.ErrorIs(t, outcome.Err, ErrInvalidRecipient)
	assert.Equal(t, 0, sender.calls)
}

func TestDispatcher_Misconfigured(t *testing.T) {
	cfg := enabledConfig()
	cfg.SMTPHost = ""
	sender := &fakeSender{sendFn: func() error { return nil }}

	d := newDispatcherWithSender(cfg, sender, &fakeAuditRepo{}, testLogger(), 0)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 0, outcome.Attempts)
	assert.ErrorIs(t, outcome.Err, ErrMisconfigured)
	assert.Equal(t, 0, sender.calls)
}

func TestDispatcher_SentFirstAttempt(t *testing.T) {
	sender := &fakeSender{sendFn: func() error { return nil }}
	audit := &fakeAuditRepo{}
	d := newDispatcherWithSender(enabledConfig(), sender, audit, testLogger(), 0)

	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusSent, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
	assert.NoError(t, outcome.Err)

	require.Len(t, audit.records, 1)
	assert.True(t, audit.records[0].Success)
	assert.False(t, audit.records[0].Simulated)
	assert.Equal(t, 1, audit.records[0].Attempts)
	require.NotNil(t, audit.records[0].Details)
	assert.Equal(t, "sent", audit.records[0].Details.Status)
	assert.Empty(t, audit.records[0].Details.ErrorChain)
}

func TestDispatcher_RetriesTransientThenSucceeds(t *testing.T) {
	failures := 2
	sender := &fakeSender{}
	sender.sendFn = func() error {
		if sender.calls <= failures {
			return errors.New("connection reset by peer")
		}
		return nil
	}

	d := newDispatcherWithSender(enabledConfig(), sender, &fakeAuditRepo{}, testLogger(), time.Millisecond)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusSent, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
}

func TestDispatcher_ExhaustsRetryBudget(t *testing.T) {
	sender := &fakeSender{sendFn: func() error { return errors.New("connection refused") }}
	audit := &fakeAuditRepo{}

	d := newDispatcherWithSender(enabledConfig(), sender, audit, testLogger(), time.Millisecond)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts, "exactly MaxRetries attempts")
	assert.ErrorIs(t, outcome.Err, ErrDeliveryFailed)

	require.Len(t, audit.records, 1)
	assert.False(t, audit.records[0].Success)
	assert.Equal(t, 3, audit.records[0].Attempts)
	assert.NotEmpty(t, audit.records[0].ErrorText)
	require.NotNil(t, audit.records[0].Details)
	assert.Equal(t, "failed", audit.records[0].Details.Status)
	assert.Contains(t, audit.records[0].Details.ErrorChain, ErrDeliveryFailed.Error())
	assert.Contains(t, audit.records[0].Details.ErrorChain, "connection refused")
}

func TestDispatcher_AuthFailureIsTerminal(t *testing.T) {
	sender := &fakeSender{sendFn: func() error {
		return &textproto.Error{Code: 535, Msg: "authentication credentials invalid"}
	}}

	d := newDispatcherWithSender(enabledConfig(), sender, &fakeAuditRepo{}, testLogger(), time.Millisecond)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts, "no retry on auth failure")
	assert.ErrorIs(t, outcome.Err, ErrAuthenticationFailed)
}

func TestDispatcher_RecipientRefusedIsTerminal(t *testing.T) {
	sender := &fakeSender{sendFn: func() error {
		return &textproto.Error{Code: 550, Msg: "mailbox unavailable"}
	}}

	d := newDispatcherWithSender(enabledConfig(), sender, &fakeAuditRepo{}, testLogger(), time.Millisecond)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
	assert.ErrorIs(t, outcome.Err, ErrRecipientRefused)
}

func TestDispatcher_AuditFailureDoesNotChangeOutcome(t *testing.T) {
	sender := &fakeSender{sendFn: func() error { return nil }}
	audit := &fakeAuditRepo{saveErr: errors.New("disk full")}

	d := newDispatcherWithSender(enabledConfig(), sender, audit, testLogger(), 0)
	outcome := d.Send(context.Background(), testMessage())

	assert.Equal(t, StatusSent, outcome.Status)
	assert.NoError(t, outcome.Err)
}

func TestClassifySendError(t *testing.T) {
	assert.ErrorIs(t, classifySendError(&textproto.Error{Code: 530}), ErrAuthenticationFailed)
	assert.ErrorIs(t, classifySendError(&textproto.Error{Code: 534}), ErrAuthenticationFailed)
	assert.ErrorIs(t, classifySendError(&textproto.Error{Code: 551}), ErrRecipientRefused)
	assert.ErrorIs(t, classifySendError(&textproto.Error{Code: 553}), ErrRecipientRefused)
	assert.Nil(t, classifySendError(&textproto.Error{Code: 421}), "transient smtp code")
	assert.Nil(t, classifySendError(errors.New("dial tcp: timeout")), "transport error is transient")
}
