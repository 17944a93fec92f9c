package verify

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
)

// TitleChecker decides whether a job title is present on a page, falling back
// to a machine-translated rendering when the literal title does not match
// (titles in the dataset are English while many source pages are not).
type TitleChecker struct {
	cfg        config.VerifyConfig
	translator Translator
}

// NewTitleChecker creates a TitleChecker with the given translation fallback.
func NewTitleChecker(cfg config.VerifyConfig, translator Translator) *TitleChecker {
	return &TitleChecker{cfg: cfg, translator: translator}
}

// IsTitlePresent reports whether the job title appears on the current page.
// An absent title yields false. Matching is tried in order: the full
// lowercased title as a substring, every title token present anywhere, and
// finally the full title against a translated rendering of the page. The
// translation fallback navigates the shared page away from the source URL,
// so it must run after every other check against the page.
func (c *TitleChecker) IsTitlePresent(ctx context.Context, page PageSession, url, jobTitle string) bool {
	if jobTitle == "" {
		return false
	}

	log := zap.L().With(zap.String("title", jobTitle))

	if err := page.Wait(ctx, time.Duration(c.cfg.TitleSettleMillis)*time.Millisecond); err != nil {
		return false
	}

	text, err := page.Text(ctx)
	if err != nil {
		log.Warn("verify: read page text", zap.Error(err))
		return false
	}

	lowerText := strings.ToLower(text)
	lowerTitle := strings.ToLower(jobTitle)

	if strings.Contains(lowerText, lowerTitle) {
		log.Info("verify: full title found on page")
		return true
	}

	if allWordsPresent(lowerText, lowerTitle) {
		log.Info("verify: all title words found on page")
		return true
	}

	return c.titleInTranslation(ctx, url, lowerTitle)
}

// allWordsPresent reports whether every whitespace-separated token of the
// title appears somewhere in the text, order-independent.
func allWordsPresent(text, title string) bool {
	words := strings.Fields(title)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// titleInTranslation fetches a translated rendering of the source URL and
// looks for the full title there. Any failure is swallowed and counts as
// not found.
func (c *TitleChecker) titleInTranslation(ctx context.Context, url, lowerTitle string) bool {
	timeout := time.Duration(c.cfg.TranslateTimeoutSecs) * time.Second

	translated, err := c.translator.TranslateAndFetch(ctx, url, c.cfg.TranslateTarget, timeout)
	if err != nil {
		zap.L().Warn("verify: translation fallback failed", zap.String("url", url), zap.Error(err))
		return false
	}

	found := strings.Contains(strings.ToLower(translated), lowerTitle)
	zap.L().Info("verify: title translation check", zap.Bool("found", found))
	return found
}
