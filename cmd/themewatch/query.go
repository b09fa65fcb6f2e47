package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kolide/kit/logutil"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/kolide/themewatch/ee/desktop/theme/platform"
	"github.com/pkg/errors"
)

// errThemeUnavailable marks failures that should exit 1 without a stack.
var errThemeUnavailable = errors.New("theme unavailable")

func runQuery(args []string) error {
	opts, err := parseOptions("query", args)
	if err != nil {
		return err
	}

	logger := logutil.NewCLILogger(opts.debug)

	ctx, cancel := context.WithTimeout(context.Background(), opts.queryTimeout)
	defer cancel()

	isDark, err := platform.New(logger).IsDark(ctx)
	if err != nil {
		if theme.IsPlatformError(err) {
			return fmt.Errorf("%w: %v", errThemeUnavailable, err)
		}
		return errors.Wrap(err, "querying theme")
	}

	fmt.Fprintln(os.Stdout, themeName(isDark))
	return nil
}

func themeName(isDark bool) string {
	if isDark {
		return "dark"
	}
	return "light"
}
