//go:build cgo

package native

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Screenshotter captures virtual-screen regions.
type Screenshotter struct{}

// NewScreenshotter returns the capture backend.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

func (s *Screenshotter) CaptureRect(x, y, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture rect %dx%d is empty", width, height)
	}
	img, err := screenshot.CaptureRect(image.Rect(x, y, x+width, y+height))
	if err != nil {
		return nil, fmt.Errorf("capture rect: %w", err)
	}
	return img, nil
}
