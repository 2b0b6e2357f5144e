package infrastructure

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers transactional mail out-of-band.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, recipientEmail, recipientName, resetURL string) error
}

// SendGridSender sends through the SendGrid API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(apiKey, senderEmail, senderName string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(senderName, senderEmail),
	}
}

func (s *SendGridSender) SendPasswordReset(ctx context.Context, recipientEmail, recipientName, resetURL string) error {
	subject := "Your password reset token is valid for 10 min"
	to := mail.NewEmail(recipientName, recipientEmail)

	plainText := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password to %s.\nIf you didn't forget your password, simply ignore this email.",
		resetURL,
	)
	htmlContent := fmt.Sprintf(
		`Forgot your password? <a href="%s">Click here to reset it</a>.<br>If you didn't forget your password, simply ignore this email.`,
		resetURL,
	)

	message := mail.NewSingleEmail(s.from, subject, to, plainText, htmlContent)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: unexpected status %d", response.StatusCode)
	}
	return nil
}
