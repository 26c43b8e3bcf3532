package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ProviderKind identifies which mail provider configuration is active
type ProviderKind int

const (
	// ProviderNone defers the error to the first send attempt
	ProviderNone ProviderKind = iota
	ProviderSendGrid
	ProviderSMTP
)

// Mail holds notification configuration: addresses plus exactly one of two
// provider configurations
type Mail struct {
	To   string
	From string

	SendGridAPIKey string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string
}

// Flags returns CLI flags for mail configuration
func (c *Mail) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mail-to",
			Usage:       "Notification recipient addresses (comma-separated)",
			Destination: &c.To,
			Sources:     cli.EnvVars("RELWATCH_MAIL_TO"),
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Usage:       "Notification sender address",
			Destination: &c.From,
			Sources:     cli.EnvVars("RELWATCH_MAIL_FROM"),
		},
		&cli.StringFlag{
			Name:        "sendgrid-api-key",
			Usage:       "SendGrid API key (takes priority over SMTP)",
			Destination: &c.SendGridAPIKey,
			Sources:     cli.EnvVars("RELWATCH_SENDGRID_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host",
			Destination: &c.SMTPHost,
			Sources:     cli.EnvVars("RELWATCH_SMTP_HOST"),
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Value:       587,
			Destination: &c.SMTPPort,
			Sources:     cli.EnvVars("RELWATCH_SMTP_PORT"),
		},
		&cli.BoolFlag{
			Name:        "smtp-secure",
			Usage:       "Use implicit TLS (SMTPS) for the SMTP connection",
			Destination: &c.SMTPSecure,
			Sources:     cli.EnvVars("RELWATCH_SMTP_SECURE"),
		},
		&cli.StringFlag{
			Name:        "smtp-user",
			Usage:       "SMTP username",
			Destination: &c.SMTPUser,
			Sources:     cli.EnvVars("RELWATCH_SMTP_USER"),
		},
		&cli.StringFlag{
			Name:        "smtp-pass",
			Usage:       "SMTP password",
			Destination: &c.SMTPPass,
			Sources:     cli.EnvVars("RELWATCH_SMTP_PASS"),
		},
	}
}

// Validate checks the settings required before any network activity.
// Provider settings are deliberately not required here: a run that detects
// no new release never needs one.
func (c *Mail) Validate() error {
	if len(c.Recipients()) == 0 {
		return goerr.New("recipient address is required",
			goerr.V("flag", "--mail-to"),
			goerr.V("env", "RELWATCH_MAIL_TO"),
		)
	}
	if c.From == "" {
		return goerr.New("sender address is required",
			goerr.V("flag", "--mail-from"),
			goerr.V("env", "RELWATCH_MAIL_FROM"),
		)
	}
	return nil
}

// Recipients splits the comma-separated recipient list, dropping empty
// entries
func (c *Mail) Recipients() []string {
	var addrs []string
	for _, addr := range strings.Split(c.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// Provider resolves the tagged provider variant once at startup. SendGrid
// wins when both configurations are present.
func (c *Mail) Provider() ProviderKind {
	switch {
	case c.SendGridAPIKey != "":
		return ProviderSendGrid
	case c.SMTPHost != "":
		return ProviderSMTP
	default:
		return ProviderNone
	}
}
