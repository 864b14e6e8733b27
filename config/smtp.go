package config

import "strings"

// SMTPConfig contains outbound mail transport configuration.
type SMTPConfig struct {
	Host     string `env:"HOST"   envDefault:"localhost"`
	Port     int    `env:"PORT"   envDefault:"587"`
	User     string `env:"USER"   envDefault:""`
	Password string `env:"PASS"   envDefault:""`
	Sender   string `env:"SENDER" envDefault:"no-reply@localhost"`
}

// Sanitize applies guardrails to SMTP configuration values.
func (s *SMTPConfig) Sanitize() {
	s.Host = strings.TrimSpace(s.Host)
	s.Sender = strings.TrimSpace(s.Sender)
	if s.Port <= 0 || s.Port > 65535 {
		s.Port = 587
	}
}
