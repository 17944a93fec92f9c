package verify

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/rotisserie/eris"
	"golang.org/x/image/draw"
)

// FitImage downscales a screenshot proportionally so it fits within
// maxWidth x maxHeight, bounding recognition cost and keeping oversized
// full-page captures within the engine's limits. The output is always PNG,
// the format the recognizers expect; JPEG captures are transcoded even when
// already inside the bounds.
func FitImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "verify: decode screenshot")
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		if format == "png" {
			return data, nil
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, eris.Wrap(err, "verify: encode screenshot")
		}
		return buf.Bytes(), nil
	}

	scale := 1.0
	if h > maxHeight {
		scale = float64(maxHeight) / float64(h)
	}
	if s := float64(maxWidth) / float64(w); w > maxWidth && s < scale {
		scale = s
	}

	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, eris.Wrap(err, "verify: encode screenshot")
	}
	return buf.Bytes(), nil
}
