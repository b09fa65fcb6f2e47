//go:build linux
// +build linux

package platform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/godbus/dbus/v5"
	"github.com/kolide/kit/env"
	"github.com/kolide/themewatch/ee/allowedcmd"
	"github.com/pkg/errors"
)

const (
	portalDestination   = "org.freedesktop.portal.Desktop"
	portalObjectPath    = "/org/freedesktop/portal/desktop"
	portalSettingsRead  = "org.freedesktop.portal.Settings.Read"
	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"

	gnomeInterfaceSchema = "org.gnome.desktop.interface"
)

func newOsSpecificQuerier(logger log.Logger) *chainQuerier {
	return &chainQuerier{
		logger:   logger,
		platform: "linux",
		sources: []source{
			{name: "xdg-desktop-portal", query: queryPortal},
			{name: "gsettings color-scheme", query: queryGsettingsColorScheme},
			{name: "GTK_THEME", query: queryGtkThemeEnv},
			{name: "gtk settings.ini", query: queryGtkSettingsFiles},
			{name: "gsettings gtk-theme", query: queryGsettingsGtkTheme},
		},
	}
}

func queryPortal(ctx context.Context) (bool, error) {
	// SessionBus is shared and must not be closed.
	conn, err := dbus.SessionBus()
	if err != nil {
		return false, errors.Wrap(err, "connecting to session bus")
	}

	var value dbus.Variant
	obj := conn.Object(portalDestination, dbus.ObjectPath(portalObjectPath))
	if err := obj.CallWithContext(ctx, portalSettingsRead, 0, appearanceNamespace, colorSchemeKey).Store(&value); err != nil {
		return false, errors.Wrap(err, "reading color-scheme from portal")
	}

	return parsePortalColorScheme(value)
}

func gsettingsGet(ctx context.Context, key string) ([]byte, error) {
	cmd, err := allowedcmd.Gsettings(ctx, "get", gnomeInterfaceSchema, key)
	if err != nil {
		return nil, errors.Wrap(err, "creating gsettings command")
	}

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, "running %s", cmd)
	}

	return out, nil
}

func queryGsettingsColorScheme(ctx context.Context) (bool, error) {
	out, err := gsettingsGet(ctx, "color-scheme")
	if err != nil {
		return false, err
	}

	return parseGsettingsColorScheme(out)
}

func queryGsettingsGtkTheme(ctx context.Context) (bool, error) {
	out, err := gsettingsGet(ctx, "gtk-theme")
	if err != nil {
		return false, err
	}

	return parseGtkThemeName(unquoteGvariant(out))
}

func queryGtkThemeEnv(_ context.Context) (bool, error) {
	return parseGtkThemeName(env.String("GTK_THEME", ""))
}

func queryGtkSettingsFiles(_ context.Context) (bool, error) {
	paths := gtkSettingsPaths()
	if len(paths) == 0 {
		return false, errors.New("could not determine config directory")
	}

	var (
		lastErr         error
		sawNoPreference bool
	)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}

		isDark, err := parseGtkSettingsIni(data)
		switch {
		case err == nil:
			return isDark, nil
		case errors.Is(err, errNoPreference):
			sawNoPreference = true
		default:
			lastErr = errors.Wrap(err, path)
		}
	}

	if sawNoPreference {
		return false, errNoPreference
	}

	return false, lastErr
}

// gtkSettingsPaths returns settings.ini locations, newest GTK first.
func gtkSettingsPaths() []string {
	configDir := env.String("XDG_CONFIG_HOME", "")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configDir = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(configDir, "gtk-4.0", "settings.ini"),
		filepath.Join(configDir, "gtk-3.0", "settings.ini"),
	}
}

func osSpecificWatchPaths() []string {
	return gtkSettingsPaths()
}
