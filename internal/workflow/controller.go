// internal/workflow/controller.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/browser"
	"github.com/devashk/naukribot/internal/config"
)

const releaseTimeout = 15 * time.Second

// ErrLoginFailed is returned by Run when the login stage did not succeed.
var ErrLoginFailed = errors.New("login stage failed")

// Controller sequences the two-stage login → upload pipeline over one
// browser session. Failures below Run are converted to outcome values;
// nothing in the pipeline terminates the process.
type Controller struct {
	cfg    *config.Config
	logger *zap.Logger

	launch browser.LaunchFunc
	stat   func(string) (os.FileInfo, error)
	now    func() time.Time

	state   State
	session *browser.Session
}

// Option customizes a Controller; used by tests to substitute the browser
// launch, filesystem probe and clock.
type Option func(*Controller)

// WithLaunchFunc substitutes the browser launch function.
func WithLaunchFunc(launch browser.LaunchFunc) Option {
	return func(c *Controller) { c.launch = launch }
}

// WithStatFunc substitutes the resume-file existence probe.
func WithStatFunc(stat func(string) (os.FileInfo, error)) Option {
	return func(c *Controller) { c.stat = stat }
}

// WithClock substitutes the clock used for checkpoint verification.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New builds a workflow controller.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		logger: logger.Named("workflow"),
		stat:   os.Stat,
		now:    time.Now,
		state:  StateInit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the controller's current pipeline state.
func (c *Controller) State() State { return c.state }

// Run executes the full automation: login, then upload, then unconditional
// cleanup. Cleanup runs on every exit path, including a panic inside a
// stage, and releasing the session is idempotent.
func (c *Controller) Run(ctx context.Context) (err error) {
	c.logger.Info("Starting automation run.")
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Automation run panicked.", zap.Any("panic", r))
			err = fmt.Errorf("automation panicked: %v", r)
		}
		c.cleanup()
		c.logger.Info("Automation run finished.", zap.Stringer("state", c.state))
	}()

	ok, _ := c.Login(ctx)
	if !ok {
		c.state = StateLoginFailed
		return ErrLoginFailed
	}
	c.state = StateLoggedIn

	resumePath, err := c.resumePath()
	if err != nil {
		// Config-fatal: the upload stage is never entered without the file.
		c.state = StateUploadFailed
		c.logger.Error("Resume file is not available; aborting before upload.", zap.Error(err))
		return err
	}

	c.state = StateUploadingResume
	if c.UploadResume(ctx, c.session, resumePath) {
		c.state = StateDone
		return nil
	}
	c.state = StateUploadFailed
	return errors.New("upload stage failed")
}

// resumePath resolves the configured resume location and verifies a regular
// file exists there. A missing file is a fatal configuration error.
func (c *Controller) resumePath() (string, error) {
	path, err := c.cfg.Resume.ResolvedPath()
	if err != nil {
		return "", err
	}
	info, err := c.stat(path)
	if err != nil {
		return "", fmt.Errorf("resume file not found at %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("resume path %s is a directory, not a file", path)
	}
	return path, nil
}

// cleanup releases the session if one was acquired. It uses a fresh context
// so teardown still runs when the workflow's context already expired.
func (c *Controller) cleanup() {
	if c.session == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	c.session.Release(ctx)
}

// waiter builds the bounded waiter for the session's driver.
func (c *Controller) waiter(sess *browser.Session) *browser.Waiter {
	return browser.NewWaiter(sess.Driver(), c.cfg.Wait.PollInterval, c.logger)
}
