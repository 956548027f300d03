package services

import (
	"fmt"
	"sync"
	"techmart_server/structs"
	"techmart_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService sends transactional mail through Resend. Every send is best
// effort; a mail failure never fails the operation that triggered it.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}
	return nil
}

// SendWelcomeEmail mails a new account after sign-up. Disabled or failing
// mail only logs.
func (es *EmailService) SendWelcomeEmail(profile *tables.Profile) {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email disabled, skipping welcome mail", gecho.Field("to", profile.Email))
		return
	}

	body := fmt.Sprintf(`
		<h1>Welcome to %s, %s!</h1>
		<p>Your account is ready. Browse the catalog and start filling your cart.</p>
	`, es.cfg.Server.AppName, profile.FullName)

	go func() {
		if err := es.SendEmail([]string{profile.Email}, "Welcome to "+es.cfg.Server.AppName, body); err != nil {
			es.logger.Warn("Welcome email failed", gecho.Field("to", profile.Email))
		}
	}()
}
