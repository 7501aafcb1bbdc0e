// Package mail is the SMTP implementation of the outbound email sender,
// for operators who relay through their own mail host instead of the
// transactional-email provider.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hashtagwebpage/prospector/internal/usecase"
)

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendEmail delivers one HTML email over SMTP. There is no provider
// receipt id; the returned receipt is empty on success.
func (s *SMTPSender) SendEmail(to, subject, htmlBody string) (string, error) {
	if s.Host == "" {
		return "", &usecase.ConfigurationError{Name: "SMTP_HOST"}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "", nil
}
