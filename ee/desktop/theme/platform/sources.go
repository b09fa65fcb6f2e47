package platform

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/hashicorp/go-multierror"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/pkg/errors"
)

// errNoPreference means a source was readable but didn't express a dark or
// light preference, so the next source should be consulted.
var errNoPreference = errors.New("no theme preference set")

type source struct {
	name  string
	query func(ctx context.Context) (bool, error)
}

// chainQuerier asks each source in order and returns the first definite
// answer. If every source was readable but none had a preference, the theme is
// light. If none were readable, the combined failures are returned as a
// PlatformError.
type chainQuerier struct {
	logger   log.Logger
	platform string
	sources  []source
}

func (c *chainQuerier) IsDark(ctx context.Context) (bool, error) {
	var (
		result          *multierror.Error
		sawNoPreference bool
	)

	for _, s := range c.sources {
		isDark, err := s.query(ctx)
		switch {
		case err == nil:
			return isDark, nil
		case errors.Is(err, errNoPreference):
			sawNoPreference = true
		default:
			if ctx.Err() != nil {
				return false, theme.NewPlatformError(c.platform, ctx.Err())
			}
			level.Debug(c.logger).Log("msg", "theme source unavailable", "source", s.name, "err", err)
			result = multierror.Append(result, errors.Wrap(err, s.name))
		}
	}

	if sawNoPreference {
		return false, nil
	}

	if result == nil {
		return false, theme.NewPlatformError(c.platform, errors.New("no theme sources configured"))
	}

	return false, theme.NewPlatformError(c.platform, result.ErrorOrNil())
}
