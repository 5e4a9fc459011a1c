// internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/config"
)

// LaunchFunc starts a browser driver. Production code uses LaunchChrome;
// tests substitute a fake.
type LaunchFunc func(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (Driver, error)

// Session is the exclusively-owned handle to one live browser instance. It
// exists from Acquire until Release; Release is idempotent and the session
// must never be used after it.
type Session struct {
	id     string
	drv    Driver
	logger *zap.Logger

	closeOnce sync.Once
}

// Acquire launches a browser and loads the entry URL. On navigation failure
// the just-created driver is torn down before returning, so a partial
// failure never leaks a session.
func Acquire(ctx context.Context, cfg *config.Config, logger *zap.Logger, launch LaunchFunc) (*Session, error) {
	if launch == nil {
		launch = LaunchChrome
	}

	drv, err := launch(ctx, cfg.Browser, logger)
	if err != nil {
		logger.Error("Failed to launch the browser.", zap.Error(err))
		return nil, fmt.Errorf("failed to acquire browser session: %w", err)
	}

	sessionID := uuid.New().String()
	s := &Session{
		id:     sessionID,
		drv:    drv,
		logger: logger.Named("session").With(zap.String("session_id", sessionID)),
	}
	drv.SetImplicitWait(cfg.Browser.ImplicitWait)

	if err := drv.Navigate(ctx, cfg.Site.LoginURL); err != nil {
		s.logger.Error("Failed to load the entry page.", zap.String("url", cfg.Site.LoginURL), zap.Error(err))
		s.Release(ctx)
		return nil, fmt.Errorf("failed to load entry page: %w", err)
	}

	s.logger.Info("Entry page loaded.", zap.String("url", cfg.Site.LoginURL))
	return s, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Driver exposes the underlying driver capability.
func (s *Session) Driver() Driver { return s.drv }

// TitleContains verifies page identity: it reports whether the current
// document title contains the token, case-insensitively. A driver failure
// while reading the title counts as a failed verification, not a fault.
func (s *Session) TitleContains(ctx context.Context, token string) bool {
	title, err := s.drv.Title(ctx)
	if err != nil {
		s.logger.Error("Failed to read the page title.", zap.Error(err))
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(token))
}

// Release tears the session down. It is nil-safe and idempotent: repeated
// calls, or a call on an already-dead driver, never raise and log at most
// once per call. A teardown error is logged, never propagated, so cleanup
// failures cannot mask the workflow's real outcome.
func (s *Session) Release(ctx context.Context) {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if err := s.drv.Quit(ctx); err != nil {
			s.logger.Warn("Error while closing the browser session.", zap.Error(err))
			return
		}
		s.logger.Info("Browser session closed.")
	})
}
