package service

//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/hoangbru/blulog-api/internal/auth/service Mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/hoangbru/blulog-api/config"
)

// Mailer dispatches outbound email. It is fire-and-forget from the caller's
// perspective; a failure never rolls back the operation that triggered it.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
