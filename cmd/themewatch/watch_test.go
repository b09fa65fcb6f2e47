package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/kolide/themewatch/ee/desktop/theme"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	trimmed := strings.TrimSpace(b.buf.String())
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

type changeLine struct {
	Dark bool   `json:"dark"`
	Ts   string `json:"ts"`
}

func TestWatchActor(t *testing.T) {
	t.Parallel()

	var dark atomic.Bool
	querier := theme.QuerierFunc(func(_ context.Context) (bool, error) {
		return dark.Load(), nil
	})

	watcher := theme.New(querier, theme.WithPollInterval(10*time.Millisecond))
	var out lockedBuffer

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	watchActor, err := createWatchActor(ctx, watcher, &out, log.NewNopLogger())
	require.NoError(t, err)
	require.True(t, watcher.Running())

	executeReturned := make(chan error, 1)
	go func() {
		executeReturned <- watchActor.Execute()
	}()

	dark.Store(true)
	require.Eventually(t, func() bool {
		return len(out.lines()) == 2
	}, 5*time.Second, 10*time.Millisecond)

	watchActor.Interrupt(nil)
	require.NoError(t, <-executeReturned)
	require.False(t, watcher.Running())

	lines := out.lines()
	var initial, changed changeLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &initial))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &changed))

	require.False(t, initial.Dark)
	require.True(t, changed.Dark)
	_, err = time.Parse(time.RFC3339Nano, changed.Ts)
	require.NoError(t, err)
}

func TestWatchActor_ChangeDuringStartup(t *testing.T) {
	t.Parallel()

	// The baseline sampled by AddObserver sees light; the theme has flipped to
	// dark by the time the initial value is read.
	var calls atomic.Int64
	var dark atomic.Bool
	dark.Store(true)
	querier := theme.QuerierFunc(func(_ context.Context) (bool, error) {
		if calls.Add(1) == 1 {
			return false, nil
		}
		return dark.Load(), nil
	})

	watcher := theme.New(querier, theme.WithPollInterval(10*time.Millisecond))
	t.Cleanup(watcher.Close)
	var out lockedBuffer

	_, err := createWatchActor(context.TODO(), watcher, &out, log.NewNopLogger())
	require.NoError(t, err)

	// Let the poller observe the flip; it must not produce a second dark line.
	require.Eventually(t, func() bool {
		return calls.Load() >= 5
	}, 5*time.Second, 10*time.Millisecond)
	require.Len(t, out.lines(), 1)

	dark.Store(false)
	require.Eventually(t, func() bool {
		return len(out.lines()) == 2
	}, 5*time.Second, 10*time.Millisecond)

	var values []bool
	for _, line := range out.lines() {
		var cl changeLine
		require.NoError(t, json.Unmarshal([]byte(line), &cl))
		values = append(values, cl.Dark)
	}
	require.Equal(t, []bool{true, false}, values)
}

func TestChangeEmitter_SkipsRepeats(t *testing.T) {
	t.Parallel()

	var out lockedBuffer
	emitter := newChangeEmitter(&out)

	emitter.DarkModeChanged(true)
	emitter.emitInitial(false)
	emitter.DarkModeChanged(true)
	emitter.DarkModeChanged(false)

	require.Len(t, out.lines(), 2)
}

func TestThemeName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dark", themeName(true))
	require.Equal(t, "light", themeName(false))
}
