package theme

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/kit/log/level"
)

// watchFiles returns a channel that receives when one of the poller's watched
// paths changes, and a func to release the underlying fsnotify watcher. With
// no watched paths, or if fsnotify is unavailable, the channel is nil and
// never fires.
func (p *poller) watchFiles() (<-chan struct{}, func()) {
	noop := func() {}

	if len(p.watchedPaths) == 0 {
		return nil, noop
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		level.Info(p.logger).Log("msg", "could not create file watcher, relying on polling only", "err", err)
		return nil, noop
	}

	// fsnotify doesn't reliably follow files that are replaced by rename, which
	// is how most settings daemons write, so watch the parent directories.
	names := make(map[string]struct{}, len(p.watchedPaths))
	watchedDirs := make(map[string]struct{})
	for _, path := range p.watchedPaths {
		path = filepath.Clean(path)
		names[path] = struct{}{}

		dir := filepath.Dir(path)
		if _, ok := watchedDirs[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			level.Debug(p.logger).Log("msg", "not watching settings directory", "dir", dir, "err", err)
			continue
		}
		watchedDirs[dir] = struct{}{}
	}

	if len(watchedDirs) == 0 {
		fw.Close()
		return nil, noop
	}

	wake := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if _, ok := names[filepath.Clean(event.Name)]; !ok {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				level.Debug(p.logger).Log("msg", "file watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return wake, func() {
		close(done)
		fw.Close()
	}
}
