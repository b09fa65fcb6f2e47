//go:build windows
// +build windows

package platform

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

const (
	personalizeKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	appsUseLightTheme  = "AppsUseLightTheme"
)

type registryQuerier struct {
	logger log.Logger
}

func newOsSpecificQuerier(logger log.Logger) *registryQuerier {
	return &registryQuerier{logger: logger}
}

func (r *registryQuerier) IsDark(_ context.Context) (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKeyPath, registry.QUERY_VALUE)
	if err != nil { // older versions of Windows will not have this key
		level.Debug(r.logger).Log("msg", "could not open personalize key", "err", err)
		return false, theme.NewPlatformError("registry", errors.Wrap(err, "opening personalize key"))
	}
	defer k.Close()

	useLight, _, err := k.GetIntegerValue(appsUseLightTheme)
	if err != nil { // older versions of Windows will not have this value
		return false, theme.NewPlatformError("registry", errors.Wrapf(err, "reading %s", appsUseLightTheme))
	}

	return useLight == 0, nil
}

func osSpecificWatchPaths() []string {
	return nil
}
