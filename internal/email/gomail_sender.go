package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// GomailSender отправляет письма через SMTP (gomail)
type GomailSender struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewGomailSender(cfg Config) (*GomailSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("from email is required")
	}

	return &GomailSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send отправляет письмо одним SMTP-соединением
func (s *GomailSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return errors.New("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
