package theme

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mixer/clock"
)

const (
	DefaultPollInterval = 1 * time.Second
	defaultQueryTimeout = 5 * time.Second
)

// Watcher tracks the OS theme and fans out changes to its observers.
type Watcher struct {
	logger       log.Logger
	querier      Querier
	pollInterval time.Duration
	queryTimeout time.Duration
	clock        clock.Clock
	watchedPaths []string

	// mu guards observers, poller and stopping. The decision to start or
	// stop the poller is always made under mu together with the set mutation.
	mu        sync.Mutex
	observers map[Observer]struct{}
	poller    *poller
	stopping  <-chan struct{} // done channel of the most recently stopped poller
}

func New(querier Querier, opts ...Option) *Watcher {
	w := &Watcher{
		logger:       log.NewNopLogger(),
		querier:      querier,
		pollInterval: DefaultPollInterval,
		queryTimeout: defaultQueryTimeout,
		clock:        clock.DefaultClock{},
		observers:    make(map[Observer]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// IsDark queries the platform directly. Nothing is cached.
func (w *Watcher) IsDark(ctx context.Context) (bool, error) {
	return w.querier.IsDark(ctx)
}

// AddObserver registers obs for theme change notifications. Adding an
// observer that is already registered is a no-op, except that a poller which
// has exited on its own is replaced.
func (w *Watcher) AddObserver(obs Observer) error {
	if err := validateObserver(obs); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, found := w.observers[obs]; !found {
		w.observers[obs] = struct{}{}
		level.Debug(w.logger).Log("msg", "added theme observer", "observer_count", len(w.observers))
	}

	if w.poller == nil || w.poller.exited() {
		w.startPoller()
	}

	return nil
}

// RemoveObserver unregisters obs. Removing an unknown observer is a no-op.
// When the last observer is removed the poller is told to stop; this call
// does not wait for it, so observers may remove themselves from within
// DarkModeChanged.
func (w *Watcher) RemoveObserver(obs Observer) {
	if validateObserver(obs) != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.observers, obs)

	if len(w.observers) == 0 {
		w.stopPoller()
	}
}

// Close removes every observer and blocks until the poller has exited. It
// must not be called from within an observer.
func (w *Watcher) Close() {
	w.mu.Lock()
	w.observers = make(map[Observer]struct{})
	w.stopPoller()
	stopping := w.stopping
	w.mu.Unlock()

	if stopping != nil {
		<-stopping
	}
}

// ObserverCount returns the number of registered observers.
func (w *Watcher) ObserverCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.observers)
}

// Running reports whether a poller is currently alive.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.poller != nil && !w.poller.exited()
}

// startPoller must be called with mu held.
func (w *Watcher) startPoller() {
	if w.poller != nil {
		level.Info(w.logger).Log("msg", "previous theme poller exited unexpectedly, restarting")
		w.stopping = w.poller.done
	}

	p := newPoller(w, w.stopping)
	p.sampleBaseline()
	w.poller = p

	go p.run()

	level.Debug(w.logger).Log("msg", "started theme poller", "interval", w.pollInterval)
}

// stopPoller must be called with mu held.
func (w *Watcher) stopPoller() {
	if w.poller == nil {
		return
	}

	w.poller.stop()
	w.stopping = w.poller.done
	w.poller = nil

	level.Debug(w.logger).Log("msg", "stopping theme poller")
}

// snapshot returns a copy of the observer set, safe to iterate without mu.
func (w *Watcher) snapshot() []Observer {
	w.mu.Lock()
	defer w.mu.Unlock()

	observers := make([]Observer, 0, len(w.observers))
	for obs := range w.observers {
		observers = append(observers, obs)
	}

	return observers
}
