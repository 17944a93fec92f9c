package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

const ocrSpaceEndpoint = "https://api.ocr.space/parse/image"

// OCRSpace recognizes text via the OCR.space HTTP API. It exists for hosts
// without a local tesseract install.
type OCRSpace struct {
	apiKey   string
	language string
	endpoint string
	client   *http.Client
}

// NewOCRSpace creates an OCRSpace recognizer.
func NewOCRSpace(apiKey, language string) *OCRSpace {
	return &OCRSpace{
		apiKey:   apiKey,
		language: language,
		endpoint: ocrSpaceEndpoint,
		client:   &http.Client{},
	}
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	OCRExitCode           int  `json:"OCRExitCode"`
}

// Recognize uploads the PNG as a base64 data URL and returns the parsed text
// of all result blocks concatenated.
func (o *OCRSpace) Recognize(ctx context.Context, png []byte) (string, error) {
	form := url.Values{}
	form.Set("base64Image", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png))
	if o.language != "" {
		form.Set("language", o.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "ocr: build ocrspace request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", eris.Wrapf(ErrEngine, "ocr: ocrspace request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrapf(ErrEngine, "ocr: read ocrspace response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Wrapf(ErrEngine, "ocr: ocrspace status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ocrSpaceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", eris.Wrapf(ErrEngine, "ocr: decode ocrspace response: %v", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", eris.Wrapf(ErrEngine, "ocr: ocrspace processing failed with exit code %d", parsed.OCRExitCode)
	}

	var sb strings.Builder
	for _, r := range parsed.ParsedResults {
		sb.WriteString(r.ParsedText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
