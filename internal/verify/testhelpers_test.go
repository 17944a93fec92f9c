package verify

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
)

func testVerifyConfig() config.VerifyConfig {
	return config.VerifyConfig{
		LoadAttempts:         2,
		PageLoadTimeoutSecs:  1,
		NameSettleMillis:     1,
		TitleSettleMillis:    1,
		TranslateTimeoutSecs: 1,
		TranslateTarget:      "en",
		MaxImageWidth:        1500,
		MaxImageHeight:       3000,
	}
}

// pngBytes encodes a blank RGBA image of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// jpegBytes encodes a blank image as JPEG, the format chromedp captures in
// whenever the screenshot quality is below 100.
func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// fakeSession scripts a PageSession. texts is consumed one entry per Text
// call; the last entry repeats once exhausted.
type fakeSession struct {
	texts      []string
	textCalls  int
	textErr    error
	navErr     error
	navErrs    []error // per-attempt override; nil entry means success
	navCalls   int
	reloads    int
	waits      []time.Duration
	screenshot []byte
	shotErr    error
	shotCalls  int
}

func (f *fakeSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	f.navCalls++
	if len(f.navErrs) >= f.navCalls {
		return f.navErrs[f.navCalls-1]
	}
	return f.navErr
}

func (f *fakeSession) Reload(ctx context.Context) error {
	f.reloads++
	return nil
}

func (f *fakeSession) Wait(ctx context.Context, d time.Duration) error {
	f.waits = append(f.waits, d)
	return nil
}

func (f *fakeSession) Text(ctx context.Context) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	i := f.textCalls
	f.textCalls++
	if i >= len(f.texts) {
		i = len(f.texts) - 1
	}
	if i < 0 {
		return "", nil
	}
	return f.texts[i], nil
}

func (f *fakeSession) Screenshot(ctx context.Context) ([]byte, error) {
	f.shotCalls++
	if f.shotErr != nil {
		return nil, f.shotErr
	}
	return f.screenshot, nil
}

// fakeRecognizer returns a fixed text or error.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, png []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

// fakeTranslator returns a fixed translated rendering or error.
type fakeTranslator struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranslator) TranslateAndFetch(ctx context.Context, url, targetLang string, timeout time.Duration) (string, error) {
	f.calls++
	return f.text, f.err
}
