package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:8080")
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendVerificationCode(to, code string) error {
	subject := "Verify Your Email Address"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to Aula!</h2>
			<p>Enter the following code to verify your email address:</p>
			<h1 style="letter-spacing: 4px;">%s</h1>
			<p>The code expires shortly, so use it right away.</p>
			<p>If you didn't create an account, please ignore this email.</p>
		</body>
		</html>
	`, code)

	plainBody := fmt.Sprintf(`
Welcome to Aula!

Enter the following code to verify your email address:

%s

The code expires shortly, so use it right away.

If you didn't create an account, please ignore this email.
	`, code)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.config.BaseURL, token)

	subject := "Reset Your Password"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset Request</h2>
			<p>We received a request to reset your password. Click the link below to reset it:</p>
			<p><a href="%s">Reset Password</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link will expire in 60 minutes.</p>
			<p>If you didn't request a password reset, please ignore this email and your password will remain unchanged.</p>
		</body>
		</html>
	`, resetURL, resetURL)

	plainBody := fmt.Sprintf(`
Password Reset Request

We received a request to reset your password. Visit the following URL to reset it:
%s

This link will expire in 60 minutes.

If you didn't request a password reset, please ignore this email and your password will remain unchanged.
	`, resetURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPasswordChangedEmail(to string) error {
	subject := "Password Changed Successfully"
	htmlBody := `
		<html>
		<body>
			<h2>Password Changed</h2>
			<p>Your password has been successfully changed.</p>
			<p>If you didn't make this change, please contact support immediately.</p>
		</body>
		</html>
	`

	plainBody := `
Password Changed

Your password has been successfully changed.

If you didn't make this change, please contact support immediately.
	`

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendEmailChangeCode(to, code string) error {
	subject := "Confirm Your New Email Address"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Email Change Request</h2>
			<p>Enter the following code to confirm this as your new email address:</p>
			<h1 style="letter-spacing: 4px;">%s</h1>
			<p>The code expires shortly, so use it right away.</p>
			<p>If you didn't request this change, please ignore this email.</p>
		</body>
		</html>
	`, code)

	plainBody := fmt.Sprintf(`
Email Change Request

Enter the following code to confirm this as your new email address:

%s

The code expires shortly, so use it right away.

If you didn't request this change, please ignore this email.
	`, code)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendEmailChangedNotice(to, newEmail string) error {
	subject := "Your Email Address Was Changed"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Email Address Changed</h2>
			<p>The email address on your account was changed to %s.</p>
			<p>All active sessions have been signed out.</p>
			<p>If you didn't make this change, please contact support immediately.</p>
		</body>
		</html>
	`, newEmail)

	plainBody := fmt.Sprintf(`
Email Address Changed

The email address on your account was changed to %s.

All active sessions have been signed out.

If you didn't make this change, please contact support immediately.
	`, newEmail)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
