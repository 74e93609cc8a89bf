// Package mail sends plain-text email through an SMTP relay.  It is used
// exclusively by the notification worker; nothing in the request path ever
// waits on mail delivery.
package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/mekbib/stayfinder/internal/config"
)

// Mailer delivers messages through the configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from SMTP configuration.  Credentials may be
// empty for open development relays such as mailpit.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

// Send delivers a single plain-text message.  Each call dials a fresh SMTP
// connection; notification volume is low enough that pooling is not worth
// the complexity.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
