package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/core/studyapi/middleware"
	"github.com/leofalp/recall/providers/deckstore/sqlitestore"
	slogobs "github.com/leofalp/recall/providers/observability/slog"
)

const (
	envDB     = "RECALL_DB"
	envUserID = "RECALL_USER_ID"

	defaultDB      = "recall.db"
	defaultTimeout = 2 * time.Minute

	observerKey = "observer"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "recall",
		Usage: "recover flashcards and quizzes from generative-model output",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "study backend base URL",
				EnvVars: []string{studyapi.EnvBaseURL},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path of the local deck cache",
				Value:   defaultDB,
				EnvVars: []string{envDB},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-call backend timeout, 0 disables it",
				Value: defaultTimeout,
			},
			&cli.IntFlag{
				Name:  "retries",
				Usage: "retries for transient backend failures, 0 disables them",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "TRACE, DEBUG, INFO, WARN or ERROR (default from $" + slogobs.EnvLogLevel + ")",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "compact, text or json (default from $" + slogobs.EnvLogFormat + ")",
			},
		},
		Before: func(c *cli.Context) error {
			level := slogobs.GetLogLevelFromEnv()
			if c.String("log-level") != "" {
				level = slogobs.ParseLogLevel(c.String("log-level"))
			}
			format := slogobs.GetFormatFromEnv()
			if c.String("log-format") != "" {
				format = slogobs.ParseFormat(c.String("log-format"))
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata[observerKey] = slogobs.New(slogobs.NewLogger(c.App.ErrWriter, level, format))
			return nil
		},
		Commands: []*cli.Command{
			extractCommand(),
			generateCommand(),
			openCommand(),
			savedCommand(),
			submitCommand(),
			cacheCommand(),
		},
	}
}

// observer returns the provider set up by the Before hook.
func observer(c *cli.Context) *slogobs.Observer {
	if o, ok := c.App.Metadata[observerKey].(*slogobs.Observer); ok {
		return o
	}
	return slogobs.New(nil)
}

// newClient builds a study API client from the global flags. The timeout
// bounds the whole call including retries; logging sees every attempt.
func newClient(c *cli.Context) *studyapi.Client {
	obs := observer(c)

	retries := c.Int("retries")
	if retries <= 0 {
		retries = -1
	}

	opts := []studyapi.Option{
		studyapi.WithObserver(obs),
		studyapi.WithMiddleware(
			middleware.NewTimeoutMiddleware(c.Duration("timeout")),
			middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: retries}),
			middleware.NewLoggingMiddleware(obs.Logger(), middleware.LogLevelStandard),
		),
	}
	if url := c.String("api-url"); url != "" {
		opts = append(opts, studyapi.WithBaseURL(url))
	}
	return studyapi.New(opts...)
}

func openStore(c *cli.Context) (*sqlitestore.Store, error) {
	store, err := sqlitestore.Open(c.Context, c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open deck cache: %w", err)
	}
	return store, nil
}
