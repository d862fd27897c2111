//go:build cgo

package native

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/draw"

	"github.com/automata-tools/deskagent/internal/model"
)

// maxRecognizeWidth bounds the bitmap fed to tesseract. Larger captures are
// downscaled first; word boxes are mapped back to source coordinates.
const maxRecognizeWidth = 1920

// Recognizer wraps a tesseract client. One instance serves the whole
// process; construction pays the model-load cost.
type Recognizer struct {
	client *gosseract.Client
}

// NewRecognizer initializes the tesseract engine.
func NewRecognizer() (*Recognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("init ocr engine: %w", err)
	}
	return &Recognizer{client: client}, nil
}

func (r *Recognizer) Detect(img image.Image) ([]model.Detection, error) {
	scale := 1.0
	bounds := img.Bounds()
	if bounds.Dx() > maxRecognizeWidth {
		scale = float64(bounds.Dx()) / float64(maxRecognizeWidth)
		scaled := image.NewRGBA(image.Rect(0, 0, maxRecognizeWidth,
			int(float64(bounds.Dy())/scale)))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	detections := make([]model.Detection, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		x := int(float64(b.Box.Min.X) * scale)
		y := int(float64(b.Box.Min.Y) * scale)
		w := int(float64(b.Box.Dx()) * scale)
		h := int(float64(b.Box.Dy()) * scale)
		detections = append(detections, model.RectDetection(
			x, y, w, h, b.Word, b.Confidence/100.0))
	}
	return detections, nil
}

func (r *Recognizer) Close() error {
	return r.client.Close()
}
