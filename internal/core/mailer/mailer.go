package mailer

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Best-effort: callers log failures and
// move on, nothing in the workflow retries a send.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// Noop is for environments without SMTP configured (tests, local dev).
type Noop struct{}

func (Noop) Send(_, _, _ string) error { return nil }
