package theme

import (
	"time"

	"github.com/go-kit/kit/log"
	"github.com/mixer/clock"
)

type Option func(*Watcher)

// WithLogger sets the logger used by the watcher and its poller.
func WithLogger(logger log.Logger) Option {
	return func(w *Watcher) {
		w.logger = log.With(logger, "component", "theme_watcher")
	}
}

// WithPollInterval sets how long the poller waits between queries.
// Non-positive values are ignored.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.pollInterval = interval
		}
	}
}

// WithQueryTimeout bounds a single background query. Non-positive values are ignored.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(w *Watcher) {
		if timeout > 0 {
			w.queryTimeout = timeout
		}
	}
}

// WithClock sets the clock used for the poll wait.
func WithClock(c clock.Clock) Option {
	return func(w *Watcher) {
		w.clock = c
	}
}

// WithWatchedPaths makes the poller wake early when any of the given files
// change. The poll interval still applies when nothing changes.
func WithWatchedPaths(paths ...string) Option {
	return func(w *Watcher) {
		w.watchedPaths = append(w.watchedPaths, paths...)
	}
}
