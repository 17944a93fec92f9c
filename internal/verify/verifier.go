package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
	"github.com/Up-Bizz/ContactVerifier/internal/model"
	"github.com/Up-Bizz/ContactVerifier/internal/resilience"
)

// Verifier drives one record through the full evidence pipeline: load the
// source page with retries, check the name, and only if the name is present
// check the phone and the job title.
type Verifier struct {
	cfg    config.VerifyConfig
	page   PageSession
	names  *NameChecker
	titles *TitleChecker
}

// NewVerifier wires the checkers onto a shared page session.
func NewVerifier(cfg config.VerifyConfig, page PageSession, recognizer Recognizer, translator Translator) *Verifier {
	return &Verifier{
		cfg:    cfg,
		page:   page,
		names:  NewNameChecker(cfg, recognizer),
		titles: NewTitleChecker(cfg, translator),
	}
}

// Verify runs all evidence checks for one record and returns the result.
// A page that cannot be reached within the attempt budget produces an error
// result with every presence field false; an unexpected failure during the
// checks is caught here and surfaces the same way. Verify never panics
// outward, so one bad record cannot take down the batch.
func (v *Verifier) Verify(ctx context.Context, rec model.Record) (result model.VerificationResult) {
	log := zap.L().With(zap.String("record", rec.ID), zap.String("url", rec.SourceURL))

	defer func() {
		if r := recover(); r != nil {
			log.Error("verify: unexpected failure", zap.Any("panic", r))
			result = model.VerificationResult{Error: fmt.Sprintf("unexpected failure: %v", r)}
		}
	}()

	if err := v.loadPage(ctx, rec.SourceURL); err != nil {
		log.Error("verify: page unreachable", zap.Int("attempts", v.cfg.LoadAttempts), zap.Error(err))
		return model.VerificationResult{
			Error: fmt.Sprintf("After %d attempts, did not reach website.", v.cfg.LoadAttempts),
		}
	}

	result.NamePresent = v.names.IsNamePresent(ctx, v.page, rec.FirstName, rec.LastName)
	if !result.NamePresent {
		// Phone and title are only checked once the name is confirmed.
		log.Info("verify: name absent, skipping phone and title checks")
		return result
	}

	result.PhonePresent = v.phonePresent(ctx, rec.Phone)
	// The title check runs last: its translation fallback navigates the
	// shared page away from the source URL.
	result.TitlePresent = v.titles.IsTitlePresent(ctx, v.page, rec.SourceURL, rec.JobTitle)

	log.Info("verify: record checked",
		zap.Bool("name_present", result.NamePresent),
		zap.Bool("phone_present", result.PhonePresent),
		zap.Bool("title_present", result.TitlePresent),
	)
	return result
}

// loadPage navigates to url with the configured attempt budget. Every
// navigation failure consumes the full budget; there is no point classifying
// browser errors when the fallback is simply trying once more.
func (v *Verifier) loadPage(ctx context.Context, url string) error {
	timeout := time.Duration(v.cfg.PageLoadTimeoutSecs) * time.Second

	return resilience.Do(ctx, resilience.RetryConfig{
		MaxAttempts:    v.cfg.LoadAttempts,
		InitialBackoff: time.Second,
		ShouldRetry:    func(error) bool { return true },
		OnRetry:        resilience.RetryLogger("browser", "navigate"),
	}, func(ctx context.Context) error {
		return v.page.Navigate(ctx, url, timeout)
	})
}

// phonePresent normalizes the record's phone number and looks for it inside
// the concatenation of all phone-shaped candidates extracted from the page.
// Substring containment (not exact membership) is intentional: page numbers
// often carry extra prefix digits or join adjacent groups.
func (v *Verifier) phonePresent(ctx context.Context, rawPhone string) bool {
	formatted := NormalizePhone(rawPhone)
	if formatted == "" {
		return false
	}

	content, err := v.page.Text(ctx)
	if err != nil {
		zap.L().Warn("verify: read page content for phone check", zap.Error(err))
		return false
	}

	candidates := ExtractPhoneNumbers(content)
	return strings.Contains(strings.Join(candidates, ", "), formatted)
}
