// Package email sends account emails through SendGrid.
package email

import (
	"fmt"

	"reported/backend/server/config"

	"github.com/apex/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendPasswordReset emails a reset link for the given one-time token. Errors
// are logged, not returned; the endpoint answers the same way either way so
// account existence is not leaked through timing or status.
func SendPasswordReset(cfg *config.Config, recipient, token string) {
	if cfg.SendGridAPIKey == "" {
		log.Warnf("SendGrid API key not set, skipping reset email to %s", recipient)
		return
	}

	from := mail.NewEmail(cfg.ResetFromName, cfg.ResetFromEmail)
	to := mail.NewEmail(recipient, recipient)
	resetURL := fmt.Sprintf("%s?token=%s", cfg.ResetBaseURL, token)

	subject := "Reset your Reported password"
	plainTextContent := getResetText(resetURL)
	htmlContent := getResetHtml(resetURL)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		log.Errorf("Error sending reset email to %s: %v", recipient, err)
		return
	}
	log.Infof("Reset email sent to %s, status %d", recipient, response.StatusCode)
}
