// Package textmetrics measures label text so placement can work with real
// box sizes.
package textmetrics

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Measurer returns the width and height of text set at size points.
type Measurer interface {
	Measure(text string, size float64) (w, h float64)
}

// GoFontMeasurer measures with the Go Regular typeface at 72 DPI, so one
// point is one screen unit. Safe for concurrent use.
type GoFontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewGoFontMeasurer parses the embedded Go Regular font.
func NewGoFontMeasurer() (*GoFontMeasurer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go regular font: %w", err)
	}
	return &GoFontMeasurer{font: fnt, faces: make(map[float64]font.Face)}, nil
}

func (m *GoFontMeasurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Measure implements Measurer. Height is ascent plus descent, independent of
// the text. Non-positive sizes measure as zero.
func (m *GoFontMeasurer) Measure(text string, size float64) (w, h float64) {
	if size <= 0 {
		return 0, 0
	}
	face, err := m.face(size)
	if err != nil {
		return FixedWidth{CharWidth: 0.6, LineHeight: 1.2}.Measure(text, size)
	}

	// Faces are not safe for concurrent use.
	m.mu.Lock()
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	m.mu.Unlock()

	return toFloat(adv), toFloat(metrics.Ascent + metrics.Descent)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FixedWidth is a monospace approximation: every rune is CharWidth*size wide
// and lines are LineHeight*size tall.
type FixedWidth struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements Measurer.
func (f FixedWidth) Measure(text string, size float64) (w, h float64) {
	if size <= 0 {
		return 0, 0
	}
	return float64(utf8.RuneCountInString(text)) * f.CharWidth * size, f.LineHeight * size
}
