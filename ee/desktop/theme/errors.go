package theme

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNilObserver is returned by AddObserver when given a nil observer.
	ErrNilObserver = errors.New("observer is nil")

	// ErrUncomparableObserver is returned by AddObserver when the observer's
	// type cannot be used as a set key (e.g. a struct value holding a slice).
	ErrUncomparableObserver = errors.New("observer type is not comparable")
)

// PlatformError reports that the OS theme resource could not be read.
type PlatformError struct {
	// Source names the resource that was consulted, e.g. "registry" or "gsettings".
	Source string
	Err    error
}

// NewPlatformError wraps err as a PlatformError for source.
func NewPlatformError(source string, err error) *PlatformError {
	return &PlatformError{Source: source, Err: err}
}

func (e *PlatformError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("reading theme from %s", e.Source)
	}
	return fmt.Sprintf("reading theme from %s: %s", e.Source, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// IsPlatformError reports whether err is, or wraps, a *PlatformError.
func IsPlatformError(err error) bool {
	var pe *PlatformError
	return errors.As(err, &pe)
}
