package theme

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mixer/clock"
)

// poller is the background loop owned by a Watcher. It re-queries the theme
// every interval and notifies a snapshot of the watcher's observers when the
// value differs from the last one it saw.
type poller struct {
	logger       log.Logger
	querier      Querier
	interval     time.Duration
	queryTimeout time.Duration
	clock        clock.Clock
	watchedPaths []string
	observers    func() []Observer

	ctx    context.Context // nolint:containedctx // cancelled to stop the poller
	cancel context.CancelFunc
	done   chan struct{} // closed once this poller and every predecessor have exited
	after  <-chan struct{} // previous poller, which must exit before we begin

	// Only touched by sampleBaseline (before run starts) and the run goroutine.
	lastKnownDark bool
	baselineKnown bool
}

func newPoller(w *Watcher, after <-chan struct{}) *poller {
	ctx, cancel := context.WithCancel(context.Background())

	return &poller{
		logger:       w.logger,
		querier:      w.querier,
		interval:     w.pollInterval,
		queryTimeout: w.queryTimeout,
		clock:        w.clock,
		watchedPaths: w.watchedPaths,
		observers:    w.snapshot,
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		after:        after,
	}
}

// sampleBaseline records the current theme so the first iteration only
// reports a transition. If the platform can't answer, the first successful
// poll becomes the baseline instead.
func (p *poller) sampleBaseline() {
	ctx, cancel := context.WithTimeout(p.ctx, p.queryTimeout)
	defer cancel()

	isDark, err := p.query(ctx)
	if err != nil {
		level.Info(p.logger).Log("msg", "could not sample initial theme, deferring baseline to first poll", "err", err)
		return
	}

	p.lastKnownDark = isDark
	p.baselineKnown = true
}

func (p *poller) run() {
	defer close(p.done)
	// A poller cancelled while still waiting on its predecessor must not report
	// done before that predecessor does.
	defer func() {
		if p.after != nil {
			<-p.after
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			level.Error(p.logger).Log("msg", "theme poller panicked", "panic", fmt.Sprintf("%+v", r))
		}
	}()

	if p.after != nil {
		select {
		case <-p.after:
		case <-p.ctx.Done():
			return
		}
	}

	wake, closeWake := p.watchFiles()
	defer closeWake()

	for {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		p.poll()

		select {
		case <-p.ctx.Done():
			return
		case <-p.clock.After(p.interval):
		case <-wake:
			level.Debug(p.logger).Log("msg", "woken early by settings file change")
		}
	}
}

func (p *poller) poll() {
	ctx, cancel := context.WithTimeout(p.ctx, p.queryTimeout)
	defer cancel()

	isDark, err := p.query(ctx)
	if err != nil {
		if p.ctx.Err() != nil {
			return
		}
		level.Debug(p.logger).Log("msg", "could not query theme, skipping this tick", "err", err)
		return
	}

	if !p.baselineKnown {
		p.lastKnownDark = isDark
		p.baselineKnown = true
		return
	}

	if isDark == p.lastKnownDark {
		return
	}

	p.lastKnownDark = isDark
	level.Debug(p.logger).Log("msg", "theme change detected", "dark", isDark)

	for _, obs := range p.observers() {
		if p.ctx.Err() != nil {
			return
		}
		p.notify(obs, isDark)
	}
}

func (p *poller) query(ctx context.Context) (isDark bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("theme querier panicked: %+v", r)
		}
	}()

	return p.querier.IsDark(ctx)
}

func (p *poller) notify(obs Observer, isDark bool) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(p.logger).Log(
				"msg", "caught panic while notifying theme observer",
				"observer", fmt.Sprintf("%T", obs),
				"panic", fmt.Sprintf("%+v", r),
			)
		}
	}()

	obs.DarkModeChanged(isDark)
}

func (p *poller) stop() {
	p.cancel()
}

func (p *poller) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
