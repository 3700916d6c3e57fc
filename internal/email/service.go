// internal/email/service.go
package email

import (
	"context"

	"github.com/sendgrid/sendgrid-go"

	"github.com/konnethq/konnet/internal/config"
)

// Provider identifies supported email providers
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"
)

// Message contains all necessary information for sending an email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message. The core never retries; retry policy belongs
// to the delivery collaborator.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Service handles email operations
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
}

// NewService creates a new email service instance. Sendgrid is used when
// an API key is configured, SMTP otherwise.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		config:   cfg,
		provider: ProviderSMTP,
	}

	if cfg.Sendgrid.APIKey != "" {
		s.provider = ProviderSendgrid
		s.sendgridClient = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	}

	return s
}

func (s *Service) Send(ctx context.Context, msg Message) error {
	if s.provider == ProviderSendgrid {
		return s.sendWithSendgrid(ctx, msg)
	}
	return s.sendWithSMTP(msg)
}
