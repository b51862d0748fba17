package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional mail via Amazon SES. With no from
// address configured it runs disabled and every send becomes a logged
// no-op, so local setups need no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcome greets a freshly registered account
func (s *EmailService) SendWelcome(toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to KinderPost"
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your KinderPost account is ready. Sign in at <a href="%s">%s</a> to see
your kindergarten's feed and daily updates.</p>
<p>This is an automated email. Please do not reply.</p>
</body></html>`, toName, s.appBaseURL, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your KinderPost account is ready. Sign in at %s to see your kindergarten's
feed and daily updates.

This is an automated email. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(toEmail, subject, htmlBody, textBody)
}

// SendPasswordChanged tells an account owner their password was changed
func (s *EmailService) SendPasswordChanged(toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password notice to %s", toEmail)
		return nil
	}

	subject := "Your KinderPost password was changed"
	textBody := fmt.Sprintf(`Hi %s,

The password of your KinderPost account was just changed. If this was not
you, contact your kindergarten's administrator immediately.
`, toName)
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>The password of your KinderPost account was just changed. If this was
not you, contact your kindergarten's administrator immediately.</p>
</body></html>`, toName)

	return s.sendEmail(toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] sendEmail: to=%s, subject=%s", toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
