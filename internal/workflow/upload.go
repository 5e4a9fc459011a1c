// internal/workflow/upload.go
package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/browser"
)

// UploadResume drives the upload stage against an already-logged-in
// session: open the profile page, dismiss a possible popup, inject the
// resume path into the file input and save. The stage reports false when a
// required element (attach input, save button) never appears; it never
// raises. Checkpoint verification afterwards is reporting only.
func (c *Controller) UploadResume(ctx context.Context, sess *browser.Session, resumePath string) bool {
	locs := c.cfg.Site.Locators
	w := c.waiter(sess)

	if err := sess.Driver().Navigate(ctx, c.cfg.Site.ProfileURL); err != nil {
		c.logger.Error("Failed to open the profile page.",
			zap.String("url", c.cfg.Site.ProfileURL), zap.Error(err))
		return false
	}

	// A promotional popup sometimes leads the profile page.
	c.dismissOptional(ctx, w, browser.ByXPath(locs.CloseButton), c.cfg.Wait.PopupCloseTimeout, "leading popup")

	if !c.attachResume(ctx, w, resumePath) {
		return false
	}
	if !c.clickSave(ctx, w) {
		return false
	}

	c.verifyUpload(ctx, w)
	return true
}

// attachResume injects the resume path into the file input. The injection
// is the upload mechanism; no OS file-picker dialog is driven.
func (c *Controller) attachResume(ctx context.Context, w *browser.Waiter, resumePath string) bool {
	attachLoc := browser.ByID(c.cfg.Site.Locators.AttachInput)
	if !w.AwaitPresence(ctx, attachLoc, c.cfg.Wait.OptionalStepTimeout) {
		c.logger.Warn("Attach-file input not found; resume not uploaded.")
		return false
	}
	res := w.Find(ctx, attachLoc, c.cfg.Wait.ResolveTimeout)
	if !res.Found() {
		c.logger.Warn("Attach-file input disappeared before it could be used.")
		return false
	}
	if err := res.Element.Upload(ctx, resumePath); err != nil {
		c.logger.Error("Failed to inject the resume path into the file input.",
			zap.String("resume_path", resumePath), zap.Error(err))
		return false
	}
	c.logger.Info("Resume attached.", zap.String("resume_path", resumePath))
	return true
}

func (c *Controller) clickSave(ctx context.Context, w *browser.Waiter) bool {
	saveLoc := browser.ByXPath(c.cfg.Site.Locators.SaveButton)
	if !w.AwaitPresence(ctx, saveLoc, c.cfg.Wait.OptionalStepTimeout) {
		c.logger.Warn("Save button not found after attaching the resume.")
		return false
	}
	res := w.Find(ctx, saveLoc, c.cfg.Wait.ResolveTimeout)
	if !res.Found() {
		c.logger.Warn("Save button disappeared before it could be clicked.")
		return false
	}
	if err := res.Element.Click(ctx); err != nil {
		c.logger.Error("Failed to click the save button.", zap.Error(err))
		return false
	}
	return true
}

// verifyUpload reads the "updated on" checkpoint and compares it against
// today's date in both tolerated renderings. The comparison is reporting,
// not a gate: whatever it finds only changes the log line.
func (c *Controller) verifyUpload(ctx context.Context, w *browser.Waiter) {
	checkpointLoc := browser.ByXPath(c.cfg.Site.Locators.UpdatedOn)
	if !w.AwaitPresence(ctx, checkpointLoc, c.cfg.Wait.CheckpointTimeout) {
		c.logger.Warn("Unable to locate the profile update date; resume upload not confirmed.")
		return
	}
	res := w.Find(ctx, checkpointLoc, c.cfg.Wait.ResolveTimeout)
	if !res.Found() {
		c.logger.Warn("Unable to locate the profile update date; resume upload not confirmed.")
		return
	}
	text, err := res.Element.Text(ctx)
	if err != nil {
		c.logger.Warn("Failed to read the profile update date.", zap.Error(err))
		return
	}

	if containsDate(text, c.now()) {
		c.logger.Info("Resume uploaded successfully.", zap.String("updated_on", text))
	} else {
		c.logger.Warn("Profile update date does not show today; upload may have failed.",
			zap.String("updated_on", text))
	}
}
