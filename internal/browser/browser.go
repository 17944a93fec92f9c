// Package browser implements the verify page capabilities on a headless
// Chrome session driven by chromedp. One session holds one page handle that
// is reused sequentially across records.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
)

// Session is a live headless Chrome page. It satisfies verify.PageSession and
// verify.Translator. Not safe for concurrent use; the batch runner drives it
// strictly one record at a time.
type Session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	currentURL    string
}

// New launches a headless Chrome process and opens a blank page. A failure
// here is fatal to the run; everything later degrades per record.
func New(ctx context.Context, cfg config.BrowserConfig) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run a no-op task so a missing or broken Chrome install fails fast.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, eris.Wrap(err, "browser: start chrome")
	}

	zap.L().Info("browser: headless chrome started", zap.Bool("headless", cfg.Headless))
	return &Session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

// Close shuts down the page and the Chrome process.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}

// Navigate loads url and waits for the document body to be ready, bounded by
// timeout. On success the session remembers url as its current location.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return eris.Wrapf(err, "browser: navigate %s", url)
	}

	s.currentURL = url
	return nil
}

// Reload re-fetches the current URL, waiting only for DOM content rather
// than the full load event.
func (s *Session) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// page.Reload sends the bare CDP command without awaiting the load
	// event (chromedp.Reload would), so this returns as soon as the new
	// document's body exists.
	err := chromedp.Run(s.browserCtx,
		page.Reload(),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return eris.Wrapf(err, "browser: reload %s", s.currentURL)
	}
	return nil
}

// Wait pauses for d, honoring context cancellation.
func (s *Session) Wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Text returns the rendered markup of the current page.
func (s *Session) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var html string
	if err := chromedp.Run(s.browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", eris.Wrap(err, "browser: read page content")
	}
	return html, nil
}

// Screenshot captures the full scrollable page as PNG bytes.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Quality 100 makes chromedp emit PNG; any lower value switches the
	// capture to JPEG.
	var buf []byte
	if err := chromedp.Run(s.browserCtx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, eris.Wrap(err, "browser: capture screenshot")
	}
	return buf, nil
}
