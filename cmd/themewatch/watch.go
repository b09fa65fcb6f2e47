package main

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/actor"
	"github.com/kolide/kit/logutil"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/kolide/themewatch/ee/desktop/theme/platform"
	"github.com/kolide/themewatch/pkg/rungroup"
	"github.com/pkg/errors"
)

func runWatch(args []string) error {
	opts, err := parseOptions("watch", args)
	if err != nil {
		return err
	}

	logger := logutil.NewServerLogger(opts.debug)
	level.Info(logger).Log("msg", "starting", "poll_interval", opts.pollInterval, "watch_files", opts.watchFiles)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcherOpts := []theme.Option{
		theme.WithLogger(logger),
		theme.WithPollInterval(opts.pollInterval),
		theme.WithQueryTimeout(opts.queryTimeout),
	}
	if opts.watchFiles {
		watcherOpts = append(watcherOpts, theme.WithWatchedPaths(platform.DefaultWatchPaths()...))
	}
	watcher := theme.New(platform.New(logger), watcherOpts...)

	runGroup := rungroup.NewRunGroup(logger)

	sigListener := newSignalListener(make(chan os.Signal, 1), cancel, logger)
	runGroup.Add("sigListener", sigListener.Execute, sigListener.Interrupt)

	watchActor, err := createWatchActor(ctx, watcher, os.Stdout, logger)
	if err != nil {
		return errors.Wrap(err, "creating theme watch actor")
	}
	runGroup.Add("themeWatcher", watchActor.Execute, watchActor.Interrupt)

	if err := runGroup.Run(); err != nil {
		return errors.Wrap(err, "run service")
	}

	return nil
}

// createWatchActor emits the current theme, then one JSON line per change
// until interrupted. The observer is registered before the initial read so a
// change between the two is still reported.
func createWatchActor(ctx context.Context, watcher *theme.Watcher, out io.Writer, logger log.Logger) (*actor.Actor, error) {
	emitter := newChangeEmitter(out)

	if err := watcher.AddObserver(emitter); err != nil {
		return nil, errors.Wrap(err, "adding theme observer")
	}

	initial, err := watcher.IsDark(ctx)
	if err != nil {
		level.Info(logger).Log("msg", "could not read initial theme", "err", err)
	} else {
		emitter.emitInitial(initial)
	}

	interrupted := make(chan struct{})
	return &actor.Actor{
		Execute: func() error {
			level.Info(logger).Log("msg", "theme watcher started")
			select {
			case <-ctx.Done():
			case <-interrupted:
			}
			return nil
		},
		Interrupt: func(err error) {
			level.Info(logger).Log("msg", "theme watcher interrupted", "err", err)
			watcher.Close()
			select {
			case <-interrupted:
			default:
				close(interrupted)
			}
		},
	}, nil
}

// changeEmitter is the observer behind `themewatch watch`. It never writes the
// same value twice in a row.
type changeEmitter struct {
	logger log.Logger

	mu      sync.Mutex
	emitted bool
	last    bool
}

func newChangeEmitter(out io.Writer) *changeEmitter {
	return &changeEmitter{
		logger: log.NewJSONLogger(log.NewSyncWriter(out)),
	}
}

func (c *changeEmitter) DarkModeChanged(isDark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.emitted && c.last == isDark {
		return
	}
	c.write(isDark)
}

// emitInitial writes the starting value unless a change was already reported.
func (c *changeEmitter) emitInitial(isDark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.emitted {
		return
	}
	c.write(isDark)
}

// write must be called with mu held.
func (c *changeEmitter) write(isDark bool) {
	c.emitted = true
	c.last = isDark
	c.logger.Log("dark", isDark, "ts", time.Now().UTC().Format(time.RFC3339Nano))
}
