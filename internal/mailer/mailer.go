package mailer

import (
	"fmt"

	"github.com/igorvsx/WalletControlAPI/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// CodeSender delivers a password reset code to a user's mailbox.
// Handlers depend on this interface so tests can stub delivery.
type CodeSender interface {
	Send(email, code string) error
}

// SMTPSender sends reset codes through a plain SMTP relay.
type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password recovery request")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code: %s", code))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.From, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}
