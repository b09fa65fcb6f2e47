//go:build darwin
// +build darwin

package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/kolide/themewatch/ee/allowedcmd"
	"github.com/pkg/errors"
)

func newOsSpecificQuerier(logger log.Logger) *chainQuerier {
	return &chainQuerier{
		logger:   logger,
		platform: "darwin",
		sources: []source{
			{name: "defaults", query: queryDefaults},
			{name: "global preferences", query: queryGlobalPreferences},
		},
	}
}

func queryDefaults(ctx context.Context) (bool, error) {
	cmd, err := allowedcmd.Defaults(ctx, "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		return false, errors.Wrap(err, "creating defaults command")
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return false, errors.Wrapf(err, "running %s", cmd)
		}
		return parseAppleInterfaceStyle(out, true)
	}

	return parseAppleInterfaceStyle(out, false)
}

func queryGlobalPreferences(_ context.Context) (bool, error) {
	path, err := globalPreferencesPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(err, "reading global preferences")
	}

	return parseGlobalPreferences(data)
}

func globalPreferencesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "finding home directory")
	}

	return filepath.Join(home, "Library", "Preferences", ".GlobalPreferences.plist"), nil
}

func osSpecificWatchPaths() []string {
	path, err := globalPreferencesPath()
	if err != nil {
		return nil
	}

	return []string{path}
}
