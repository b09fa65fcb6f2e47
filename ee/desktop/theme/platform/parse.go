package platform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-ini/ini"
	"github.com/godbus/dbus/v5"
	"github.com/groob/plist"
	"github.com/pkg/errors"
)

// Values of org.freedesktop.appearance color-scheme.
const (
	portalNoPreference uint32 = 0
	portalPreferDark   uint32 = 1
	portalPreferLight  uint32 = 2
)

// parsePortalColorScheme interprets the reply to
// org.freedesktop.portal.Settings.Read, which wraps the value in one or more
// variants depending on the portal version.
func parsePortalColorScheme(v dbus.Variant) (bool, error) {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}

	scheme, ok := value.(uint32)
	if !ok {
		return false, fmt.Errorf("unexpected color-scheme type %T", value)
	}

	switch scheme {
	case portalPreferDark:
		return true, nil
	case portalPreferLight:
		return false, nil
	case portalNoPreference:
		return false, errNoPreference
	default:
		return false, fmt.Errorf("unknown color-scheme value %d", scheme)
	}
}

// parseGsettingsColorScheme interprets `gsettings get org.gnome.desktop.interface color-scheme`.
func parseGsettingsColorScheme(out []byte) (bool, error) {
	switch unquoteGvariant(out) {
	case "prefer-dark":
		return true, nil
	case "prefer-light":
		return false, nil
	case "default", "":
		return false, errNoPreference
	default:
		return false, fmt.Errorf("unknown color-scheme %q", unquoteGvariant(out))
	}
}

// parseGtkThemeName treats any theme with "dark" in its name as dark, the
// convention used by Adwaita-dark, Yaru-dark, Breeze-Dark and friends.
func parseGtkThemeName(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errNoPreference
	}

	return strings.Contains(strings.ToLower(name), "dark"), nil
}

// parseGtkSettingsIni reads a GTK settings.ini. The explicit
// gtk-application-prefer-dark-theme setting wins over the theme name.
func parseGtkSettingsIni(data []byte) (bool, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return false, errors.Wrap(err, "parsing settings.ini")
	}

	section := cfg.Section("Settings")

	if section.HasKey("gtk-application-prefer-dark-theme") {
		preferDark, err := section.Key("gtk-application-prefer-dark-theme").Bool()
		if err != nil {
			return false, errors.Wrap(err, "parsing gtk-application-prefer-dark-theme")
		}
		if preferDark {
			return true, nil
		}
	}

	if section.HasKey("gtk-theme-name") {
		return parseGtkThemeName(section.Key("gtk-theme-name").String())
	}

	return false, errNoPreference
}

// parseAppleInterfaceStyle interprets `defaults read -g AppleInterfaceStyle`.
// The key is removed entirely in light mode, so a missing key is an answer,
// not a failure.
func parseAppleInterfaceStyle(out []byte, exited bool) (bool, error) {
	if exited {
		if bytes.Contains(out, []byte("does not exist")) {
			return false, nil
		}
		return false, fmt.Errorf("defaults failed: %s", strings.TrimSpace(string(out)))
	}

	return strings.TrimSpace(string(out)) == "Dark", nil
}

type globalPreferences struct {
	AppleInterfaceStyle string `plist:"AppleInterfaceStyle"`
}

// parseGlobalPreferences reads AppleInterfaceStyle from .GlobalPreferences.plist.
func parseGlobalPreferences(data []byte) (bool, error) {
	var prefs globalPreferences
	if err := plist.Unmarshal(data, &prefs); err != nil {
		return false, errors.Wrap(err, "unmarshalling global preferences")
	}

	return prefs.AppleInterfaceStyle == "Dark", nil
}

// unquoteGvariant strips the quoting gsettings puts around string values.
func unquoteGvariant(out []byte) string {
	return strings.Trim(strings.TrimSpace(string(out)), `'"`)
}
