package verify

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
	"github.com/Up-Bizz/ContactVerifier/internal/ocr"
)

// NameChecker decides whether a contact's name is present on a page. It tries
// the rendered text twice (with a settle delay and a reload in between) and
// falls back to recognizing text in a full-page screenshot, so names baked
// into images still count as evidence.
type NameChecker struct {
	cfg        config.VerifyConfig
	recognizer Recognizer
}

// NewNameChecker creates a NameChecker using the given recognizer for the
// screenshot fallback.
func NewNameChecker(cfg config.VerifyConfig, recognizer Recognizer) *NameChecker {
	return &NameChecker{cfg: cfg, recognizer: recognizer}
}

// IsNamePresent reports whether the name appears on the current page. If both
// name parts are absent there is no evidence to find and the result is false.
// Failures in the screenshot fallback are swallowed; the check degrades to
// "not found" rather than aborting the record.
func (c *NameChecker) IsNamePresent(ctx context.Context, page PageSession, firstName, lastName string) bool {
	if firstName == "" && lastName == "" {
		return false
	}

	first := strings.ToLower(firstName)
	last := strings.ToLower(lastName)
	log := zap.L().With(zap.String("name", strings.TrimSpace(firstName+" "+lastName)))

	match := func() bool {
		text, err := page.Text(ctx)
		if err != nil {
			log.Warn("verify: read page text", zap.Error(err))
			return false
		}
		return nameInText(strings.ToLower(text), first, last)
	}

	if match() {
		log.Info("verify: name found on first attempt")
		return true
	}

	// Let client-side rendering settle, then force a reload and retry once.
	log.Debug("verify: name not found on first attempt, reloading")
	if err := page.Wait(ctx, time.Duration(c.cfg.NameSettleMillis)*time.Millisecond); err != nil {
		return false
	}
	if err := page.Reload(ctx); err != nil {
		log.Warn("verify: reload failed", zap.Error(err))
	}
	if match() {
		log.Info("verify: name found on second attempt")
		return true
	}

	found := c.nameInScreenshot(ctx, page, first, last)
	if found {
		log.Info("verify: name found via screenshot text recognition")
	} else {
		log.Info("verify: name not found after two attempts and screenshot check")
	}
	return found
}

// nameInText applies the three evidence rules to lowercased page text:
// the exact "first last" concatenation, both parts present anywhere, or
// either part mentioned more than once (a byline plus a signature, say).
func nameInText(text, first, last string) bool {
	if first != "" && last != "" {
		if strings.Contains(text, first+" "+last) {
			return true
		}
		if strings.Contains(text, first) && strings.Contains(text, last) {
			return true
		}
	}
	if first != "" && strings.Count(text, first) > 1 {
		return true
	}
	if last != "" && strings.Count(text, last) > 1 {
		return true
	}
	return false
}

// nameInScreenshot captures a full-page screenshot, downscales it to keep the
// recognition engine within its limits, and looks for both name parts in the
// recognized text. Every failure path returns false; recognition problems
// must never abort the record.
func (c *NameChecker) nameInScreenshot(ctx context.Context, page PageSession, first, last string) (found bool) {
	log := zap.L()

	defer func() {
		if r := recover(); r != nil {
			log.Error("verify: screenshot check panicked", zap.Any("panic", r))
			found = false
		}
	}()

	shot, err := page.Screenshot(ctx)
	if err != nil {
		log.Warn("verify: capture screenshot", zap.Error(err))
		return false
	}

	shot, err = FitImage(shot, c.cfg.MaxImageWidth, c.cfg.MaxImageHeight)
	if err != nil {
		log.Warn("verify: downscale screenshot", zap.Error(err))
		return false
	}

	text, err := c.recognizer.Recognize(ctx, shot)
	if err != nil {
		if errors.Is(err, ocr.ErrEngine) {
			log.Error("verify: recognition engine failure, skipping screenshot check", zap.Error(err))
		} else {
			log.Warn("verify: screenshot recognition failed", zap.Error(err))
		}
		return false
	}

	lower := strings.ToLower(text)
	if first != "" && !strings.Contains(lower, first) {
		return false
	}
	if last != "" && !strings.Contains(lower, last) {
		return false
	}
	return true
}
