// internal/email/sendgrid.go
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendWithSendgrid sends an email using the Sendgrid API
func (s *Service) sendWithSendgrid(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.config.Sendgrid.FromName, s.config.Sendgrid.From)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmailPlainText(from, msg.Subject, to, msg.Body)

	response, err := s.sendgridClient.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
