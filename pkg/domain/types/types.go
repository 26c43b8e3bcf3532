package types

import "github.com/m-mizutani/goerr/v2"

// Version is the application version, overridden at build time via ldflags
var Version = "0.1.0"

var (
	// ErrNoRepositories is returned when neither --repo flags nor a config
	// file supplied any repository to watch
	ErrNoRepositories = goerr.New("no repositories specified")

	// ErrNoMailProvider is returned on the first send attempt when neither
	// the SendGrid nor the SMTP provider is configured
	ErrNoMailProvider = goerr.New("no mail provider configured")
)
