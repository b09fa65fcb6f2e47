// Package platform provides the OS-specific theme.Querier implementations.
package platform

import (
	"github.com/go-kit/kit/log"
	"github.com/kolide/themewatch/ee/desktop/theme"
)

// New returns the Querier for the running OS.
func New(logger log.Logger) theme.Querier {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return newOsSpecificQuerier(log.With(logger, "component", "theme_querier"))
}

// DefaultWatchPaths lists files whose modification usually means the theme
// changed. It's suitable for theme.WithWatchedPaths.
func DefaultWatchPaths() []string {
	return osSpecificWatchPaths()
}
