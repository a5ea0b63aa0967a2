package service

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// MailServiceConfig holds SMTP settings for MailService.
type MailServiceConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Logger   *slog.Logger
}

// MailService sends transactional email over SMTP.
type MailService struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewMailService creates a MailService.
func NewMailService(cfg MailServiceConfig) *MailService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: cfg.Logger,
	}
}

// SendVerificationCode delivers a verification code to the address.
// Delivery is synchronous; the caller decides how a failure propagates.
func (s *MailService) SendVerificationCode(ctx context.Context, to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h2>Email verification</h2>
		<p>Your verification code is: <strong>%s</strong></p>
		<p>The code expires in 10 minutes.</p>
		<p>If you did not request this code, you can ignore this email.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.DebugContext(ctx, "verification email sent", slog.String("to", to))
	return nil
}
