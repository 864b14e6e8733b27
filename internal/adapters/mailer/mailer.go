// Package mailer sends welcome mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/William9701/user-service/config"
)

// SendFunc matches smtp.SendMail and exists so tests can intercept the wire
// call without a live server.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers welcome mail through a single SMTP relay. It
// implements the welcome sender port.
type SMTPSender struct {
	addr   string
	auth   smtp.Auth
	sender string
	send   SendFunc
}

// NewSMTPSender builds a sender from SMTP config. Auth is only negotiated
// when a username is configured, so unauthenticated local relays work too.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: smtp host is required")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("mailer: sender address is required")
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr:   net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		auth:   auth,
		sender: cfg.Sender,
		send:   smtp.SendMail,
	}, nil
}

// Send delivers the welcome message to the given address. The context is
// honored up front; smtp.SendMail itself has no cancellation hook.
func (s *SMTPSender) Send(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("mailer: recipient address is required")
	}

	msg := buildWelcomeMessage(s.sender, email)
	if err := s.send(s.addr, s.auth, s.sender, []string{email}, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", email, err)
	}
	return nil
}

func buildWelcomeMessage(from, to string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Welcome!\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Welcome aboard! Your account has been created.\r\n")
	return []byte(b.String())
}
