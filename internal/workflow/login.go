// internal/workflow/login.go
package workflow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/browser"
)

// Login acquires a browser session and drives the login stage. It returns
// the stage's success flag plus the session (which may be live even when
// the flag is false, so the caller can inspect the page before cleanup).
// A false flag with a live session is a soft failure: the run continues to
// cleanup, but the upload stage must not be entered.
func (c *Controller) Login(ctx context.Context) (bool, *browser.Session) {
	c.state = StateLoggingIn

	sess, err := browser.Acquire(ctx, c.cfg, c.logger, c.launch)
	if err != nil {
		c.logger.Error("Failed to open the browser.", zap.Error(err))
		return false, nil
	}
	c.session = sess

	// Page identity gate: if the entry page does not identify as the
	// expected site, nothing below can be trusted and no field is touched.
	if !sess.TitleContains(ctx, c.cfg.Site.TitleToken) {
		c.logger.Error("Entry page did not identify as the expected site.",
			zap.String("expected_token", c.cfg.Site.TitleToken))
		return false, sess
	}
	c.logger.Info("Entry page verified.")

	locs := c.cfg.Site.Locators
	usernameLoc := browser.ByID(locs.UsernameField)

	// Distinguishes "site unreachable" (caught above) from "site reachable
	// but the login form is missing".
	if _, err := sess.Driver().Query(ctx, usernameLoc); err != nil {
		c.logger.Error("Login form not found on the entry page.",
			zap.Stringer("locator", usernameLoc), zap.Error(err))
		return false, sess
	}

	w := c.waiter(sess)
	resolveTimeout := c.cfg.Wait.ResolveTimeout

	username := w.Find(ctx, usernameLoc, resolveTimeout)
	password := w.Find(ctx, browser.ByID(locs.PasswordField), resolveTimeout)
	submit := w.Find(ctx, browser.ByXPath(locs.LoginButton), resolveTimeout)
	if !username.Found() || !password.Found() || !submit.Found() {
		c.logger.Error("Could not resolve all login form elements.")
		return false, sess
	}

	if err := c.fillCredentials(ctx, username.Element, password.Element); err != nil {
		c.logger.Error("Failed to fill credentials.", zap.Error(err))
		return false, sess
	}
	// Keyboard submit mirrors a real user and avoids click interception.
	if err := submit.Element.SendEnter(ctx); err != nil {
		c.logger.Error("Failed to submit the login form.", zap.Error(err))
		return false, sess
	}
	c.logger.Info("Credentials submitted.")

	// The skip interstitial only appears sometimes; its absence is fine.
	c.dismissOptional(ctx, w, browser.ByXPath(locs.SkipButton), c.cfg.Wait.OptionalStepTimeout, "skip interstitial")

	if w.AwaitPresence(ctx, browser.ByID(locs.LoginCheckpoint), c.cfg.Wait.CheckpointTimeout) {
		c.logger.Info("Login successful.")
		return true, sess
	}

	// Soft failure: the checkpoint never appeared, so the login is flagged
	// unsuccessful, but the session stays open for diagnosis until cleanup.
	c.logger.Warn("Login checkpoint not found; automation may fail.")
	return false, sess
}

// fillCredentials clears and fills both credential fields.
func (c *Controller) fillCredentials(ctx context.Context, username, password browser.Element) error {
	if err := username.Clear(ctx); err != nil {
		return err
	}
	if err := username.SendKeys(ctx, c.cfg.Credentials.Username); err != nil {
		return err
	}
	if err := password.Clear(ctx); err != nil {
		return err
	}
	return password.SendKeys(ctx, c.cfg.Credentials.Password)
}

// dismissOptional clicks an element that may or may not be on the page.
// Absence is expected and changes nothing; a failed click on a present
// element is logged and likewise does not fail the stage.
func (c *Controller) dismissOptional(ctx context.Context, w *browser.Waiter, loc browser.Locator, timeout time.Duration, what string) {
	if !w.AwaitPresence(ctx, loc, timeout) {
		return
	}
	res := w.Find(ctx, loc, timeout)
	if !res.Found() {
		return
	}
	if err := res.Element.Click(ctx); err != nil {
		c.logger.Warn("Failed to dismiss optional element.", zap.String("element", what), zap.Error(err))
		return
	}
	c.logger.Debug("Dismissed optional element.", zap.String("element", what))
}
