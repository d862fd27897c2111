package model

// Detection is one OCR hit: a quadrilateral bounding box in window-local
// pixels, the recognized text, and the engine's confidence in [0, 1].
// Detections live only for the screenshot cycle that produced them.
type Detection struct {
	Box        [4][2]int
	Text       string
	Confidence float64
}

// Center returns the centroid of the detection's bounding box.
func (d Detection) Center() (int, int) {
	var sx, sy int
	for _, p := range d.Box {
		sx += p[0]
		sy += p[1]
	}
	return sx / 4, sy / 4
}

// RectDetection builds a Detection from an axis-aligned rectangle, for
// engines that report [x, y, w, h] boxes rather than quads.
func RectDetection(x, y, w, h int, text string, confidence float64) Detection {
	return Detection{
		Box:        [4][2]int{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
		Text:       text,
		Confidence: confidence,
	}
}
