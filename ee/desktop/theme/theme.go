// Package theme detects whether the operating system is using a dark UI theme
// and notifies registered observers when that changes.
//
// A Watcher polls its Querier in the background only while at least one
// Observer is registered. The poller is started by the first AddObserver and
// stopped by the RemoveObserver that empties the observer set.
package theme

import (
	"context"
	"reflect"
)

// Querier answers whether the OS is dark-themed right now. Implementations
// must be safe for repeated and concurrent use, and should return a
// *PlatformError when the underlying OS resource cannot be read.
type Querier interface {
	IsDark(ctx context.Context) (bool, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context) (bool, error)

func (f QuerierFunc) IsDark(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Observer is notified with the new value each time the theme changes.
//
// Observers are kept in a set keyed by identity, so the dynamic type must be
// comparable. Pointer receivers are the usual choice.
type Observer interface {
	DarkModeChanged(isDark bool)
}

type funcObserver struct {
	f func(bool)
}

func (o *funcObserver) DarkModeChanged(isDark bool) {
	o.f(isDark)
}

// NewObserver wraps f in an Observer. Each call returns a distinct observer,
// so keep the returned value around to remove it later.
func NewObserver(f func(isDark bool)) Observer {
	return &funcObserver{f: f}
}

// validateObserver returns an error if obs cannot be placed in the observer set.
func validateObserver(obs Observer) error {
	if obs == nil {
		return ErrNilObserver
	}

	if fo, ok := obs.(*funcObserver); ok && (fo == nil || fo.f == nil) {
		return ErrNilObserver
	}

	v := reflect.ValueOf(obs)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return ErrNilObserver
	}

	if !hashable(obs) {
		return ErrUncomparableObserver
	}

	return nil
}

// hashable reports whether obs can be used as a map key. A statically
// comparable type can still hold an uncomparable value in an interface field,
// which only fails when hashed.
func hashable(obs Observer) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	m := make(map[Observer]struct{}, 1)
	m[obs] = struct{}{}
	return len(m) == 1
}
