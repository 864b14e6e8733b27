package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeMailer runs the welcome-notification consumer worker.
	ServiceModeMailer ServiceMode = "mailer"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeMailer,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeMailer:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, mailer)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// MailerConfig contains mailer worker configuration.
type MailerConfig struct {
	// Concurrency is the number of consumer goroutines. A single consumer
	// preserves strict dequeue order; raising it avoids head-of-line
	// blocking when one message is stuck in its retry cycle.
	Concurrency int `env:"MAILER_CONCURRENCY" envDefault:"1"`

	// Prefetch is the per-consumer unacked message limit (basic.qos).
	Prefetch int `env:"MAILER_PREFETCH" envDefault:"1"`
}

// Sanitize applies guardrails to mailer configuration values.
func (m *MailerConfig) Sanitize() {
	if m.Concurrency < 1 {
		m.Concurrency = 1
	}
	if m.Prefetch < 1 {
		m.Prefetch = 1
	}
}
