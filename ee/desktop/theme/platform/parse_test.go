package platform

import (
	"fmt"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

func Test_parsePortalColorScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		value          dbus.Variant
		expectedDark   bool
		expectedErr    error
		expectAnyError bool
	}{
		{
			name:         "prefer dark, double wrapped",
			value:        dbus.MakeVariant(dbus.MakeVariant(uint32(1))),
			expectedDark: true,
		},
		{
			name:  "prefer light, single wrapped",
			value: dbus.MakeVariant(uint32(2)),
		},
		{
			name:        "no preference",
			value:       dbus.MakeVariant(dbus.MakeVariant(uint32(0))),
			expectedErr: errNoPreference,
		},
		{
			name:           "unknown value",
			value:          dbus.MakeVariant(uint32(7)),
			expectAnyError: true,
		},
		{
			name:           "wrong type",
			value:          dbus.MakeVariant("prefer-dark"),
			expectAnyError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isDark, err := parsePortalColorScheme(tt.value)
			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.expectAnyError:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.expectedDark, isDark)
			}
		})
	}
}

func Test_parseGsettingsColorScheme(t *testing.T) {
	t.Parallel()

	isDark, err := parseGsettingsColorScheme([]byte("'prefer-dark'\n"))
	require.NoError(t, err)
	require.True(t, isDark)

	isDark, err = parseGsettingsColorScheme([]byte("'prefer-light'\n"))
	require.NoError(t, err)
	require.False(t, isDark)

	_, err = parseGsettingsColorScheme([]byte("'default'\n"))
	require.ErrorIs(t, err, errNoPreference)

	_, err = parseGsettingsColorScheme([]byte("'purple'\n"))
	require.Error(t, err)
	require.NotErrorIs(t, err, errNoPreference)
}

func Test_parseGtkThemeName(t *testing.T) {
	t.Parallel()

	for name, expected := range map[string]bool{
		"Adwaita-dark": true,
		"Breeze-Dark":  true,
		"Yaru":         false,
		"Adwaita":      false,
	} {
		isDark, err := parseGtkThemeName(name)
		require.NoError(t, err, name)
		require.Equal(t, expected, isDark, name)
	}

	_, err := parseGtkThemeName("  ")
	require.ErrorIs(t, err, errNoPreference)
}

func Test_parseGtkSettingsIni(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		contents     string
		expectedDark bool
		expectedErr  error
		expectError  bool
	}{
		{
			name:         "prefer dark wins over light theme name",
			contents:     "[Settings]\ngtk-theme-name=Adwaita\ngtk-application-prefer-dark-theme=1\n",
			expectedDark: true,
		},
		{
			name:         "prefer dark false falls back to theme name",
			contents:     "[Settings]\ngtk-application-prefer-dark-theme=false\ngtk-theme-name=Arc-Dark\n",
			expectedDark: true,
		},
		{
			name:     "light theme name",
			contents: "[Settings]\n# managed by the desktop\ngtk-theme-name=Arc\n",
		},
		{
			name:        "no relevant keys",
			contents:    "[Settings]\ngtk-font-name=Cantarell 11\n",
			expectedErr: errNoPreference,
		},
		{
			name:        "no settings section",
			contents:    "[Other]\nkey=value\n",
			expectedErr: errNoPreference,
		},
		{
			name:        "malformed prefer dark",
			contents:    "[Settings]\ngtk-application-prefer-dark-theme=maybe\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isDark, err := parseGtkSettingsIni([]byte(tt.contents))
			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.expectError:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.expectedDark, isDark)
			}
		})
	}
}

func Test_parseAppleInterfaceStyle(t *testing.T) {
	t.Parallel()

	isDark, err := parseAppleInterfaceStyle([]byte("Dark\n"), false)
	require.NoError(t, err)
	require.True(t, isDark)

	isDark, err = parseAppleInterfaceStyle([]byte("Light\n"), false)
	require.NoError(t, err)
	require.False(t, isDark)

	isDark, err = parseAppleInterfaceStyle([]byte("The domain/default pair of (kCFPreferencesAnyApplication, AppleInterfaceStyle) does not exist\n"), true)
	require.NoError(t, err, "missing key means light mode")
	require.False(t, isDark)

	_, err = parseAppleInterfaceStyle([]byte("something went wrong"), true)
	require.Error(t, err)
}

func Test_parseGlobalPreferences(t *testing.T) {
	t.Parallel()

	const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>AppleLocale</key>
	<string>en_US</string>
%s</dict>
</plist>
`

	dark := []byte(fmt.Sprintf(plistTemplate, "\t<key>AppleInterfaceStyle</key>\n\t<string>Dark</string>\n"))
	isDark, err := parseGlobalPreferences(dark)
	require.NoError(t, err)
	require.True(t, isDark)

	light := []byte(fmt.Sprintf(plistTemplate, ""))
	isDark, err = parseGlobalPreferences(light)
	require.NoError(t, err)
	require.False(t, isDark)

	_, err = parseGlobalPreferences([]byte("<plist><dict><key>AppleInterfaceStyle</dict>"))
	require.Error(t, err)
}
