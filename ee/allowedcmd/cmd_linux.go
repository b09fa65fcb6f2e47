//go:build linux
// +build linux

package allowedcmd

import "context"

func Echo(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/echo", arg...)
}

func Gsettings(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/gsettings", arg...)
}
