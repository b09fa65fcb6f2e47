//go:build darwin
// +build darwin

package allowedcmd

import "context"

func Defaults(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/defaults", arg...)
}

func Echo(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/bin/echo", arg...)
}
