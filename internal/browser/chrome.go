// internal/browser/chrome.go
package browser

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/config"
)

// queryPollInterval is the short driver-internal interval used while
// emulating the implicit wait inside a single Query call.
const queryPollInterval = 250 * time.Millisecond

// ChromeDriver implements Driver on top of a chromedp-controlled Chrome
// process. One driver owns exactly one browser process and one tab.
type ChromeDriver struct {
	logger *zap.Logger

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	actionTimeout time.Duration

	mu           sync.Mutex
	implicitWait time.Duration

	quitOnce sync.Once
	quitErr  error
}

var _ Driver = (*ChromeDriver)(nil)

// LaunchChrome starts a Chrome process with the configured options and
// connects a fresh tab to it. The returned driver must be closed with Quit.
func LaunchChrome(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (Driver, error) {
	opts := allocatorOptions(cfg, runtime.GOOS)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(logger.Sugar().Errorf),
	)

	// Run with no actions forces the browser process to start now, so a
	// launch failure surfaces here instead of on the first interaction.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	d := &ChromeDriver{
		logger:        logger.Named("chrome"),
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		actionTimeout: cfg.ActionTimeout,
		implicitWait:  cfg.ImplicitWait,
	}
	d.logger.Info("Browser launched.", zap.Bool("headless", cfg.Headless))
	return d, nil
}

// allocatorOptions builds the Chrome launch flags. goos is a parameter so
// the platform gate on the fullscreen flag stays testable.
func allocatorOptions(cfg config.BrowserConfig, goos string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-gpu", true),
	)
	if cfg.Fullscreen {
		opts = append(opts, chromedp.Flag(fullscreenFlag(goos), true))
	}
	for _, arg := range cfg.Args {
		opts = append(opts, chromedp.Flag(strings.TrimPrefix(arg, "--"), true))
	}
	return opts
}

// fullscreenFlag picks the platform-appropriate way to take the whole
// screen: maximized on Windows, kiosk mode everywhere else.
func fullscreenFlag(goos string) string {
	if goos == "windows" {
		return "start-maximized"
	}
	return "kiosk"
}

// run executes chromedp actions against the driver's tab, honoring any
// deadline carried by the caller's context.
func (d *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := d.browserCtx
	cancel := func() {}
	if deadline, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(runCtx, deadline)
	}
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads the URL and waits for the document body to be ready.
func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, d.actionTimeout)
	defer cancel()

	d.logger.Debug("Navigating.", zap.String("url", url))
	if err := d.run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return &DriverFault{Op: "navigate", Err: err}
	}
	return nil
}

// Title returns the current document title.
func (d *ChromeDriver) Title(ctx context.Context) (string, error) {
	titleCtx, cancel := context.WithTimeout(ctx, d.actionTimeout)
	defer cancel()

	var title string
	if err := d.run(titleCtx, chromedp.Title(&title)); err != nil {
		return "", &DriverFault{Op: "title", Err: err}
	}
	return title, nil
}

// ImplicitWait returns the driver's ambient wait duration.
func (d *ChromeDriver) ImplicitWait() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicitWait
}

// SetImplicitWait replaces the driver's ambient wait duration.
func (d *ChromeDriver) SetImplicitWait(wait time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicitWait = wait
}

// Query resolves the locator to zero-or-one element. It retries internally
// until the ambient implicit wait elapses; with a zero implicit wait it
// checks the page exactly once. Absence is reported as ErrNoMatch.
func (d *ChromeDriver) Query(ctx context.Context, loc Locator) (Element, error) {
	sel, opt, err := nativeQuery(loc)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(d.ImplicitWait())
	for {
		found, err := d.queryOnce(ctx, sel, opt)
		if err != nil {
			return nil, &DriverFault{Op: "query " + loc.String(), Err: err}
		}
		if found {
			return &chromeElement{drv: d, sel: sel, opt: opt, loc: loc}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrNoMatch
		}
		interval := queryPollInterval
		if remaining := time.Until(deadline); remaining < interval {
			interval = remaining
		}
		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, &DriverFault{Op: "query " + loc.String(), Err: ctx.Err()}
		}
	}
}

// queryOnce performs a single non-blocking DOM lookup.
func (d *ChromeDriver) queryOnce(ctx context.Context, sel string, opt chromedp.QueryOption) (bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, d.actionTimeout)
	defer cancel()

	var nodes []*cdp.Node
	// AtLeast(0) makes Nodes return immediately with whatever matches now
	// instead of blocking until the element appears.
	if err := d.run(queryCtx, chromedp.Nodes(sel, &nodes, opt, chromedp.AtLeast(0))); err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

// nativeQuery is the locator registry: it maps the closed locator-kind
// enumeration to chromedp's native query mechanism. The switch is
// exhaustive over Kind; constructing an unknown kind is a programming error
// and is reported, never silently matched.
func nativeQuery(loc Locator) (string, chromedp.QueryOption, error) {
	switch loc.Kind {
	case KindID:
		return "#" + loc.Expr, chromedp.ByQuery, nil
	case KindName:
		return fmt.Sprintf("[name=%q]", loc.Expr), chromedp.ByQuery, nil
	case KindTag:
		return loc.Expr, chromedp.ByQuery, nil
	case KindClass:
		return "." + loc.Expr, chromedp.ByQuery, nil
	case KindCSS:
		return loc.Expr, chromedp.ByQuery, nil
	case KindXPath:
		return loc.Expr, chromedp.BySearch, nil
	case KindLinkText:
		return fmt.Sprintf("//a[normalize-space(.)=%q]", loc.Expr), chromedp.BySearch, nil
	default:
		return "", nil, fmt.Errorf("unsupported locator kind %v", loc.Kind)
	}
}

// Quit closes the tab and the browser process. Safe to call more than once.
func (d *ChromeDriver) Quit(ctx context.Context) error {
	d.quitOnce.Do(func() {
		d.logger.Debug("Closing browser.")
		// chromedp.Cancel shuts the browser down gracefully before the
		// contexts are torn down.
		if err := chromedp.Cancel(d.browserCtx); err != nil {
			d.quitErr = err
		}
		d.browserCancel()
		d.allocCancel()
	})
	return d.quitErr
}

// chromeElement is a handle bound to the selector that resolved it. Actions
// re-target the node through the same selector, so a node that left the
// document surfaces as an action error rather than a stale pointer.
type chromeElement struct {
	drv *ChromeDriver
	sel string
	opt chromedp.QueryOption
	loc Locator
}

var _ Element = (*chromeElement)(nil)

func (e *chromeElement) action(ctx context.Context, op string, act chromedp.Action) error {
	actionCtx, cancel := context.WithTimeout(ctx, e.drv.actionTimeout)
	defer cancel()
	if err := e.drv.run(actionCtx, act); err != nil {
		return &DriverFault{Op: op + " " + e.loc.String(), Err: err}
	}
	return nil
}

func (e *chromeElement) Clear(ctx context.Context) error {
	return e.action(ctx, "clear", chromedp.Clear(e.sel, e.opt))
}

func (e *chromeElement) SendKeys(ctx context.Context, text string) error {
	return e.action(ctx, "send-keys", chromedp.SendKeys(e.sel, text, e.opt))
}

func (e *chromeElement) SendEnter(ctx context.Context) error {
	return e.action(ctx, "send-enter", chromedp.SendKeys(e.sel, kb.Enter, e.opt))
}

func (e *chromeElement) Click(ctx context.Context) error {
	return e.action(ctx, "click", chromedp.Click(e.sel, e.opt))
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.action(ctx, "text", chromedp.Text(e.sel, &text, e.opt)); err != nil {
		return "", err
	}
	return text, nil
}

func (e *chromeElement) Upload(ctx context.Context, path string) error {
	return e.action(ctx, "upload", chromedp.SetUploadFiles(e.sel, []string{path}, e.opt))
}
