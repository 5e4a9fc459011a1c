// internal/workflow/mocks_test.go
package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/browser"
	"github.com/devashk/naukribot/internal/config"
)

// stubElement records the interactions performed on it.
type stubElement struct {
	mu      sync.Mutex
	text    string
	keys    []string
	clears  int
	clicks  int
	enters  int
	uploads []string

	clickErr error
}

func (e *stubElement) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clears++
	return nil
}

func (e *stubElement) SendKeys(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = append(e.keys, text)
	return nil
}

func (e *stubElement) SendEnter(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enters++
	return nil
}

func (e *stubElement) Click(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clicks++
	return e.clickErr
}

func (e *stubElement) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

func (e *stubElement) Upload(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.uploads = append(e.uploads, path)
	return nil
}

// stubDriver serves a fixed page: elements are keyed by the locator's
// string form and anything unknown reports absence.
type stubDriver struct {
	mu sync.Mutex

	implicit time.Duration
	title    string

	elements map[string]*stubElement
	queries  map[string]int

	navigated []string
	navErrOn  string
	navErr    error

	quitCalls    int
	panicOnTitle bool
}

func newStubDriver(title string) *stubDriver {
	return &stubDriver{
		title:    title,
		elements: make(map[string]*stubElement),
		queries:  make(map[string]int),
	}
}

// serve places an element on the fake page and returns it for assertions.
func (d *stubDriver) serve(loc browser.Locator) *stubElement {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := &stubElement{}
	d.elements[loc.String()] = el
	return el
}

func (d *stubDriver) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navigated = append(d.navigated, url)
	if d.navErrOn != "" && url == d.navErrOn {
		return d.navErr
	}
	return nil
}

func (d *stubDriver) Title(ctx context.Context) (string, error) {
	if d.panicOnTitle {
		panic("title read exploded")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, nil
}

func (d *stubDriver) Query(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := loc.String()
	d.queries[key]++
	if el, ok := d.elements[key]; ok {
		return el, nil
	}
	return nil, browser.ErrNoMatch
}

func (d *stubDriver) queryCount(loc browser.Locator) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queries[loc.String()]
}

func (d *stubDriver) ImplicitWait() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicit
}

func (d *stubDriver) SetImplicitWait(wait time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicit = wait
}

func (d *stubDriver) Quit(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quitCalls++
	return nil
}

func stubLaunch(drv browser.Driver) browser.LaunchFunc {
	return func(context.Context, config.BrowserConfig, *zap.Logger) (browser.Driver, error) {
		return drv, nil
	}
}

// testConfig shrinks every wait so absence-driven paths finish quickly.
func testConfig(resumePath string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Credentials = config.CredentialsConfig{Username: "jobseeker@example.com", Password: "hunter2"}
	cfg.Resume.Path = resumePath
	cfg.Browser.ImplicitWait = 0
	cfg.Wait = config.WaitConfig{
		PollInterval:        2 * time.Millisecond,
		ResolveTimeout:      20 * time.Millisecond,
		CheckpointTimeout:   20 * time.Millisecond,
		OptionalStepTimeout: 10 * time.Millisecond,
		PopupCloseTimeout:   10 * time.Millisecond,
	}
	return cfg
}

// serveLoginForm places the three mandatory login elements on the page and
// returns them keyed for assertions.
func serveLoginForm(drv *stubDriver, cfg *config.Config) (username, password, submit *stubElement) {
	locs := cfg.Site.Locators
	username = drv.serve(browser.ByID(locs.UsernameField))
	password = drv.serve(browser.ByID(locs.PasswordField))
	submit = drv.serve(browser.ByXPath(locs.LoginButton))
	return username, password, submit
}

func newTestController(t *testing.T, cfg *config.Config, drv *stubDriver, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithLaunchFunc(stubLaunch(drv))}, opts...)
	return New(cfg, zap.NewNop(), opts...)
}
