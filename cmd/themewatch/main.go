package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/kolide/kit/logutil"
	"github.com/kolide/kit/version"
	"github.com/pkg/errors"
)

func main() {
	var logger log.Logger
	logger = log.NewJSONLogger(os.Stderr) // only used until options are parsed.

	// Without a known positional argument, fall back to watching.
	run := runWatch
	args := os.Args[1:]
	if isSubCommand() {
		run = subCommand(os.Args[1])
		args = os.Args[2:]
	}

	if err := run(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if errors.Is(err, errThemeUnavailable) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logutil.Fatal(logger, "err", err, "stack", fmt.Sprintf("%+v", err))
	}
}

func isSubCommand() bool {
	if len(os.Args) < 2 {
		return false
	}

	return subCommand(os.Args[1]) != nil
}

func subCommand(name string) func([]string) error {
	switch name {
	case "query":
		return runQuery
	case "watch":
		return runWatch
	case "version":
		return runVersion
	}

	return nil
}

func runVersion(_ []string) error {
	version.PrintFull()
	return nil
}
