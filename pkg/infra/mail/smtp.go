package mail

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the SMTP transport settings
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS (SMTPS) instead of opportunistic STARTTLS
	Username string
	Password string
}

// SMTP is the SMTP-based transport provider
type SMTP struct {
	cfg SMTPConfig
}

// NewSMTP creates an SMTP sender
func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send delivers the message over SMTP, dialing per send. The watcher sends
// at most a handful of messages per invocation, so no connection is kept.
func (s *SMTP) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return goerr.Wrap(err, "invalid sender address", goerr.V("from", msg.From))
	}
	if err := m.To(msg.To...); err != nil {
		return goerr.Wrap(err, "invalid recipient address", goerr.V("to", msg.To))
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
	}
	if s.cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to create SMTP client", goerr.V("host", s.cfg.Host))
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return goerr.Wrap(err, "SMTP delivery failed", goerr.V("host", s.cfg.Host))
	}

	return nil
}
