// Package verify implements the page-evidence checks that decide whether a
// contact's name, phone number and job title actually appear on a web page.
// Page automation, text recognition and translation are consumed through
// capability interfaces so the heuristics stay testable without a browser.
package verify

import (
	"context"
	"time"
)

// PageSession is a loaded browser page shared sequentially across records.
// Navigate must fully complete (or fail) before the session is reused.
type PageSession interface {
	// Navigate loads url, waiting for the page to finish loading within timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// Reload re-fetches the current URL, waiting for DOM content to load.
	Reload(ctx context.Context) error
	// Wait pauses for d to let client-side rendering settle.
	Wait(ctx context.Context, d time.Duration) error
	// Text returns the current rendered page markup.
	Text(ctx context.Context) (string, error)
	// Screenshot captures the full scrollable page as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)
}

// Recognizer extracts text from a page screenshot. Engine-level failures are
// reported as errors matching ocr.ErrEngine, distinct from "no text found"
// (an empty string with a nil error).
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// Translator fetches a machine-translated rendering of a URL.
type Translator interface {
	TranslateAndFetch(ctx context.Context, url, targetLang string, timeout time.Duration) (string, error)
}
