package browser

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// translateURL builds the Google Translate proxy URL for a page, auto-
// detecting the source language.
func translateURL(pageURL, targetLang string) string {
	return fmt.Sprintf("https://translate.google.com/translate?hl=%s&sl=auto&u=%s",
		url.QueryEscape(targetLang), url.QueryEscape(pageURL))
}

// TranslateAndFetch renders pageURL through the Google Translate proxy and
// returns the translated markup. It navigates the shared page handle away
// from its current location; callers sequence it after all other checks.
func (s *Session) TranslateAndFetch(ctx context.Context, pageURL, targetLang string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	proxied := translateURL(pageURL, targetLang)

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(proxied),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", eris.Wrapf(err, "browser: translate %s", pageURL)
	}

	s.currentURL = proxied
	return html, nil
}
