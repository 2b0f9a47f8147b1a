package email

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quillhq/quill/internal/config"
	mail "github.com/xhit/go-simple-mail/v2"
)

// ErrNotConfigured is returned when contact notifications are disabled or
// the outbound credentials are missing. No network connection is attempted
// in that case.
var ErrNotConfigured = errors.New("email notifications are not configured")

// Service handles outbound email for contact form submissions.
type Service struct {
	config *config.EmailConfig
}

// ContactMessage contains the data of a contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// New creates a new email notification service.
func New(cfg *config.EmailConfig) *Service {
	return &Service{
		config: cfg,
	}
}

const contactTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
    <h2>New Contact Message</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <p><strong>Message:</strong></p>
    <p>{{.Message}}</p>
</body>
</html>`

// SendContactNotification delivers a contact form submission to the
// configured recipient. Delivery is best effort: every failure mode,
// including missing credentials, a refused TLS upgrade and authentication
// errors, comes back as an error for the caller to report, never as a fault.
func (s *Service) SendContactNotification(msg ContactMessage) error {
	if s.config == nil || !s.config.Enabled {
		log.Debug("Email notifications are disabled, skipping contact notification")
		return ErrNotConfigured
	}
	if s.config.Username == "" || s.config.Password == "" {
		log.Warn("SMTP credentials are missing, skipping contact notification")
		return ErrNotConfigured
	}

	body, err := s.generateEmailBody(msg)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.sendEmail("New Contact Message", body)
}

// generateEmailBody creates the HTML email body.
func (s *Service) generateEmailBody(msg ContactMessage) (string, error) {
	t, err := template.New("contact").Parse(contactTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, msg); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// sendEmail sends an email using the go-simple-mail library.
func (s *Service) sendEmail(subject, body string) error {
	server := mail.NewSMTPClient()
	server.Host = s.config.SMTPHost
	server.Port = s.config.SMTPPort
	server.Username = s.config.Username
	server.Password = s.config.Password

	if s.config.UseSSL {
		server.Encryption = mail.EncryptionSSLTLS
	} else if s.config.UseTLS {
		server.Encryption = mail.EncryptionSTARTTLS
	} else {
		server.Encryption = mail.EncryptionNone
	}

	if s.config.InsecureSkipVerify {
		server.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	// Bounded timeouts so a hanging relay cannot stall the caller
	server.KeepAlive = false
	server.ConnectTimeout = 10 * time.Second
	server.SendTimeout = 10 * time.Second

	smtpClient, err := server.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		if closeErr := smtpClient.Close(); closeErr != nil {
			log.Warn("Failed to close SMTP client", "error", closeErr)
		}
	}()

	fromName := s.config.FromName
	if fromName == "" {
		fromName = "Quill"
	}

	to := s.config.ToEmail
	if to == "" {
		to = s.config.FromEmail
	}

	email := mail.NewMSG()
	email.SetFrom(fmt.Sprintf("%s <%s>", fromName, s.config.FromEmail))
	email.AddTo(to)
	email.SetSubject(subject)
	email.SetBody(mail.TextHTML, body)

	if err := email.Send(smtpClient); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("Contact notification sent", "to", to)
	return nil
}
