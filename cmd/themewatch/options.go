package main

import (
	"flag"
	"time"

	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
)

const envVarPrefix = "THEMEWATCH"

// options is the set of configurable options that may be set when launching
// themewatch
type options struct {
	pollInterval time.Duration
	queryTimeout time.Duration
	watchFiles   bool
	debug        bool
}

// parseOptions parses flags, THEMEWATCH_ environment variables and an optional
// config file, in that order of precedence.
func parseOptions(subcommand string, args []string) (*options, error) {
	flagset := flag.NewFlagSet("themewatch "+subcommand, flag.ContinueOnError)

	var (
		flPollInterval = flagset.Duration(
			"poll_interval",
			theme.DefaultPollInterval,
			"How often to query the OS theme",
		)
		flQueryTimeout = flagset.Duration(
			"query_timeout",
			5*time.Second,
			"How long a single theme query may take",
		)
		flWatchFiles = flagset.Bool(
			"watch_files",
			true,
			"Query immediately when known theme settings files change",
		)
		flDebug = flagset.Bool(
			"debug",
			false,
			"Whether or not debug logging is enabled (default: false)",
		)
		_ = flagset.String(
			"config",
			"",
			"config file to parse options from (optional)",
		)
	)

	if err := ff.Parse(flagset, args,
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
		ff.WithEnvVarPrefix(envVarPrefix),
	); err != nil {
		return nil, errors.Wrap(err, "parsing flags")
	}

	if *flPollInterval <= 0 {
		return nil, errors.Errorf("poll_interval must be positive, got %s", *flPollInterval)
	}

	if *flQueryTimeout <= 0 {
		return nil, errors.Errorf("query_timeout must be positive, got %s", *flQueryTimeout)
	}

	return &options{
		pollInterval: *flPollInterval,
		queryTimeout: *flQueryTimeout,
		watchFiles:   *flWatchFiles,
		debug:        *flDebug,
	}, nil
}
