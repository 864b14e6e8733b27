package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/William9701/user-service/config"
)

func newTestSender(t *testing.T) *SMTPSender {
	t.Helper()
	s, err := NewSMTPSender(config.SMTPConfig{
		Host:   "smtp.example.com",
		Port:   587,
		Sender: "noreply@example.com",
	})
	require.NoError(t, err)
	return s
}

func TestSMTPSender_Send(t *testing.T) {
	s := newTestSender(t)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "To: user@example.com\r\n")
	assert.Contains(t, string(gotMsg), "Subject: Welcome!\r\n")
}

func TestSMTPSender_SendError(t *testing.T) {
	s := newTestSender(t)

	sentinel := errors.New("connection refused")
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return sentinel
	}

	err := s.Send(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, sentinel)
}

func TestSMTPSender_SendCanceledContext(t *testing.T) {
	s := newTestSender(t)

	called := false
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, "user@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSMTPSender_EmptyRecipient(t *testing.T) {
	s := newTestSender(t)
	assert.Error(t, s.Send(context.Background(), ""))
}

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(config.SMTPConfig{Port: 25, Sender: "a@b.com"})
	assert.Error(t, err)

	_, err = NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 25})
	assert.Error(t, err)
}
