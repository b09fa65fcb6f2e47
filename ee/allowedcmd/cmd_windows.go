//go:build windows
// +build windows

package allowedcmd

import "context"

func Echo(ctx context.Context, arg ...string) (*TracedCmd, error) {
	// echo on Windows is only available as a command in cmd.exe
	return newCmd(ctx, "echo", arg...), nil
}
