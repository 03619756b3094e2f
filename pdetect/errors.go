package pdetect

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotConfigured is returned by reads on a sensor whose vision service was never resolved.
var ErrNotConfigured = errors.New("pdetect sensor has no vision service configured")

// DependencyMissingError is returned by Reconfigure when the declared vision service is not
// among the resolved dependencies.
type DependencyMissingError struct {
	Name string
	Err  error
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("required dependency %q not found: %v", e.Name, e.Err)
}

// Unwrap returns the lookup failure reported by the dependency collection.
func (e *DependencyMissingError) Unwrap() error {
	return e.Err
}
