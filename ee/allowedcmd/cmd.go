// Package allowedcmd wraps access to exec.Cmd in order to consolidate path lookup logic.
// We use hardcoded (known, safe) paths to executables, but make an exception
// to allow for looking up executable locations when it's not possible to know these
// locations in advance -- e.g. on NixOS, we cannot know the specific store path ahead
// of time. All usage of exec.Cmd in themewatch should use this package.
package allowedcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
)

const cmdGoMaxProcs = 2

var ErrCommandNotFound = errors.New("command not found")

func newCmd(ctx context.Context, fullPathToCmd string, arg ...string) *TracedCmd {
	cmd := exec.CommandContext(ctx, fullPathToCmd, arg...) //nolint:forbidigo // This is our approved usage of exec.CommandContext
	cmd.Env = append(os.Environ(), fmt.Sprintf("GOMAXPROCS=%d", cmdGoMaxProcs))
	return &TracedCmd{
		Ctx: ctx,
		Cmd: cmd,
	}
}

// validatedCommand returns a command for knownPath if it exists there. On
// systems without fixed binary locations it falls back to searching PATH for
// the same base name.
func validatedCommand(ctx context.Context, knownPath string, arg ...string) (*TracedCmd, error) {
	knownPath = filepath.Clean(knownPath)

	if _, err := os.Stat(knownPath); err == nil {
		return newCmd(ctx, knownPath, arg...), nil
	}

	if !allowSearchPath() {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, knownPath)
	}

	foundPath, err := exec.LookPath(filepath.Base(knownPath))
	if err != nil {
		return nil, fmt.Errorf("%w: not found at %s and could not be located elsewhere", ErrCommandNotFound, knownPath)
	}

	return newCmd(ctx, foundPath, arg...), nil
}

func allowSearchPath() bool {
	return IsNixOS()
}

// Save results of lookup so we don't have to stat for /etc/NIXOS every time
// we want to know.
var (
	checkedIsNixOS = &atomic.Bool{}
	isNixOS        = &atomic.Bool{}
)

func IsNixOS() bool {
	if checkedIsNixOS.Load() {
		return isNixOS.Load()
	}

	if _, err := os.Stat("/etc/NIXOS"); err == nil {
		isNixOS.Store(true)
	}

	checkedIsNixOS.Store(true)
	return isNixOS.Load()
}
