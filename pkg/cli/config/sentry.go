package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds the error reporting configuration. Reporting is disabled when
// no DSN is given.
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
	release     string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Category:    "Sentry",
			Usage:       "Sentry DSN for error reporting",
			Sources:     cli.EnvVars("RISKMATCH_SENTRY_DSN"),
			Destination: &x.DSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Category:    "Sentry",
			Usage:       "Sentry environment",
			Sources:     cli.EnvVars("RISKMATCH_SENTRY_ENV"),
			Destination: &x.Environment,
		},
	}
}

// LogValue implements slog.LogValuer
func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.IsEnabled()),
		slog.String("environment", x.Environment),
	)
}

// IsEnabled returns true when a DSN is configured
func (x *Sentry) IsEnabled() bool {
	return x.DSN != ""
}

// SetRelease sets the release name reported with events
func (x *Sentry) SetRelease(release string) {
	x.release = release
}

// Configure initializes the global Sentry client. The returned closer flushes
// buffered events.
func (x *Sentry) Configure() (func(), error) {
	if !x.IsEnabled() {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.DSN,
		Environment: x.Environment,
		Release:     x.release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}, nil
}
