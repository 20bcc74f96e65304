package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendApplicationSubmitted(toEmail, toName, schoolName string) error
	SendSchoolNotification(toEmail, schoolName, applicantName string) error
	SendApplicationStatusUpdate(toEmail, toName, schoolName, status string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// devMode reports whether SMTP credentials are missing, in which case
// emails are logged instead of sent.
func (s *EmailServiceImpl) devMode() bool {
	return s.config.Username == "" || s.config.Password == ""
}

// SendApplicationSubmitted confirms to an applicant that their application was received
func (s *EmailServiceImpl) SendApplicationSubmitted(toEmail, toName, schoolName string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("school", schoolName).
			Msg("SMTP credentials not configured - application confirmation email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Application Received - %s", schoolName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Received</h2>
				<p>Hello %s,</p>
				<p>Your application to <strong>%s</strong> has been received and is pending review.</p>
				<p>You will be notified once the school has processed your application. You can also follow its progress from your dashboard.</p>
				<p>Best regards,<br>The School Locator Team</p>
			</div>
		</body>
		</html>
	`, toName, schoolName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendSchoolNotification notifies a school that a new application has arrived
func (s *EmailServiceImpl) SendSchoolNotification(toEmail, schoolName, applicantName string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("school", schoolName).
			Str("applicant", applicantName).
			Msg("SMTP credentials not configured - school notification email not sent.")
		return nil
	}

	subject := "New Application Received"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Application</h2>
				<p>Hello %s,</p>
				<p><strong>%s</strong> has submitted an application to your school.</p>
				<p>Log in to your dashboard to review the application.</p>
				<p>Best regards,<br>The School Locator Team</p>
			</div>
		</body>
		</html>
	`, schoolName, applicantName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApplicationStatusUpdate informs an applicant that their application status changed
func (s *EmailServiceImpl) SendApplicationStatusUpdate(toEmail, toName, schoolName, status string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("school", schoolName).
			Str("status", status).
			Msg("SMTP credentials not configured - status update email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Application Update - %s", schoolName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Status Update</h2>
				<p>Hello %s,</p>
				<p>Your application to <strong>%s</strong> is now: <strong>%s</strong>.</p>
				<p>Log in to your dashboard for details and next steps.</p>
				<p>Best regards,<br>The School Locator Team</p>
			</div>
		</body>
		</html>
	`, toName, schoolName, status)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
