// internal/browser/driver.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoMatch is returned by Driver.Query when the locator matches no element
// on the current page. Absence is an expected outcome, not a fault.
var ErrNoMatch = errors.New("no element matches locator")

// ErrSessionClosed is returned when an operation is attempted on a driver
// that has already been torn down.
var ErrSessionClosed = errors.New("browser session already closed")

// DriverFault wraps an unexpected driver-level failure (browser process
// died, CDP connection severed). Callers branch on it with errors.As and
// must not treat it as ordinary element absence.
type DriverFault struct {
	Op  string
	Err error
}

func (f *DriverFault) Error() string {
	return fmt.Sprintf("driver fault during %s: %v", f.Op, f.Err)
}

func (f *DriverFault) Unwrap() error { return f.Err }

// Element is a transient, session-scoped handle to a DOM node. It is valid
// only while the owning session is live and the node stays in the document;
// it must not be retained across navigations.
type Element interface {
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	// SendEnter submits via a keyboard Enter press on the element, which
	// mirrors a real user and avoids click-interception issues.
	SendEnter(ctx context.Context) error
	Click(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	// Upload injects an absolute file path into a file input. No OS
	// file-picker dialog is involved.
	Upload(ctx context.Context, path string) error
}

// Driver is the opaque browser capability the core depends on. Query
// returns zero-or-one element: ErrNoMatch when nothing matches, a
// *DriverFault when the driver itself failed.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	Query(ctx context.Context, loc Locator) (Element, error)
	ImplicitWait() time.Duration
	SetImplicitWait(d time.Duration)
	Quit(ctx context.Context) error
}
