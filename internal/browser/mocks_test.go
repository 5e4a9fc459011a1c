// internal/browser/mocks_test.go
package browser

import (
	"context"
	"sync"
	"time"
)

// fakeElement records the interactions performed on it.
type fakeElement struct {
	mu      sync.Mutex
	text    string
	textErr error

	clearErr error
	keysErr  error
	clickErr error

	keys    []string
	clears  int
	clicks  int
	enters  int
	uploads []string
}

func (e *fakeElement) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clears++
	return e.clearErr
}

func (e *fakeElement) SendKeys(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = append(e.keys, text)
	return e.keysErr
}

func (e *fakeElement) SendEnter(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enters++
	return e.keysErr
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clicks++
	return e.clickErr
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, e.textErr
}

func (e *fakeElement) Upload(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.uploads = append(e.uploads, path)
	return nil
}

// fakeDriver implements Driver with a pluggable query function.
type fakeDriver struct {
	mu       sync.Mutex
	implicit time.Duration

	queryFn func(Locator) (Element, error)

	title    string
	titleErr error

	navErr    error
	navigated []string

	quitErr   error
	quitCalls int
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navigated = append(d.navigated, url)
	return d.navErr
}

func (d *fakeDriver) Title(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, d.titleErr
}

func (d *fakeDriver) Query(ctx context.Context, loc Locator) (Element, error) {
	if d.queryFn != nil {
		return d.queryFn(loc)
	}
	return nil, ErrNoMatch
}

func (d *fakeDriver) ImplicitWait() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicit
}

func (d *fakeDriver) SetImplicitWait(wait time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicit = wait
}

func (d *fakeDriver) Quit(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quitCalls++
	return d.quitErr
}
