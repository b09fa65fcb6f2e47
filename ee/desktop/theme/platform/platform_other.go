//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package platform

import (
	"context"
	"runtime"

	"github.com/go-kit/kit/log"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/pkg/errors"
)

type unsupportedQuerier struct{}

func newOsSpecificQuerier(_ log.Logger) unsupportedQuerier {
	return unsupportedQuerier{}
}

func (unsupportedQuerier) IsDark(_ context.Context) (bool, error) {
	return false, theme.NewPlatformError(runtime.GOOS, errors.New("unsupported platform"))
}

func osSpecificWatchPaths() []string {
	return nil
}
