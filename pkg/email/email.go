package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-talent-sift-backend/config"
)

// EmailService sends shortlist notifications to the ticketing inbox via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// ShortlistEmailData holds the candidate details for a shortlist notification
type ShortlistEmailData struct {
	Name        string
	Email       string
	Phone       string
	Experience  float64
	Score       float64
	Description string
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPUsername, // relay uses the login email as from address
		toEmail:   cfg.ShortlistEmailTo,
	}
}

// shortlistEmailTemplate is the HTML template for shortlist notifications
const shortlistEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Shortlisted Candidate</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 10px; }
        .label { font-weight: bold; color: #555; }
        .description { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; white-space: pre-line; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Shortlisted Candidate</h1>
        </div>
        <div class="content">
            <div class="field"><span class="label">Name:</span> {{.Name}}</div>
            <div class="field"><span class="label">Email:</span> {{.Email}}</div>
            <div class="field"><span class="label">Phone:</span> {{.Phone}}</div>
            <div class="field"><span class="label">Experience:</span> {{.Experience}} years</div>
            <div class="field"><span class="label">Score:</span> {{.Score}}</div>
            <div class="description">{{.Description}}</div>
        </div>
    </div>
</body>
</html>`

// IsConfigured reports whether the service has enough configuration to send
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.port != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

// SendShortlistEmail dispatches a shortlist notification for one candidate
func (s *EmailService) SendShortlistEmail(data ShortlistEmailData) error {
	tmpl, err := template.New("shortlist").Parse(shortlistEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Shortlisted Candidate: %s", data.Name)
	msg := []byte("To: " + s.toEmail + "\r\n" +
		"From: " + s.fromEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		body.String())

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send shortlist email: %w", err)
	}

	return nil
}
