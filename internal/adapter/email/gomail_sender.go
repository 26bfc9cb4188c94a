package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

type gomailSender struct {
	cfg config.SMTPConfig
	log logger.Logger
}

func NewGomailSender(cfg config.SMTPConfig, log logger.Logger) Mailer {
	return &gomailSender{
		cfg: cfg,
		log: log.With("adapter", "mailer"),
	}
}

func (s *gomailSender) SendPasswordResetOTP(toEmail, toName, otp string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.SenderEmail, s.cfg.SenderName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", "Password Reset OTP - Booksy")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is: %s\n\nThis code will expire in 10 minutes.\nIf you didn't request this, please ignore this email.\n",
		toName, otp))
	m.AddAlternative("text/html", fmt.Sprintf(
		`<p>Hello %s,</p>
		 <p>Your password reset code is: <b>%s</b></p>
		 <p>This code will expire in 10 minutes.</p>
		 <p>If you didn't request this, please ignore this email.</p>`,
		toName, otp))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.Errorf("failed to send OTP email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.log.Infof("OTP email sent to %s", toEmail)
	return nil
}
