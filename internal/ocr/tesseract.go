package ocr

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rotisserie/eris"
)

// Tesseract recognizes text by shelling out to the tesseract CLI.
type Tesseract struct {
	binPath   string
	languages string
}

// NewTesseract creates a Tesseract recognizer. If binPath is empty,
// "tesseract" is used. languages is passed as -l (e.g. "eng" or "eng+fin").
func NewTesseract(binPath, languages string) *Tesseract {
	if binPath == "" {
		binPath = "tesseract"
	}
	return &Tesseract{binPath: binPath, languages: languages}
}

// Recognize feeds the PNG to tesseract over stdin and returns stdout. A
// non-zero exit is reported as an engine failure.
func (t *Tesseract) Recognize(ctx context.Context, png []byte) (string, error) {
	args := []string{"stdin", "stdout"}
	if t.languages != "" {
		args = append(args, "-l", t.languages)
	}

	cmd := exec.CommandContext(ctx, t.binPath, args...)
	cmd.Stdin = bytes.NewReader(png)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(ErrEngine, "ocr: tesseract: %v: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
