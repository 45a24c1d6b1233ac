package textmetrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoFontMeasurer(t *testing.T) {
	m, err := NewGoFontMeasurer()
	require.NoError(t, err)

	w1, h1 := m.Measure("Lincoln", 11)
	w2, h2 := m.Measure("Lincoln", 22)
	wShort, hShort := m.Measure("Li", 11)

	assert.Greater(t, w1, 0.0)
	assert.Greater(t, h1, 0.0)
	assert.InDelta(t, 2*w1, w2, 1, "width scales with size")
	assert.InDelta(t, 2*h1, h2, 1, "height scales with size")
	assert.Less(t, wShort, w1)
	assert.Equal(t, h1, hShort, "height does not depend on the text")

	w, h := m.Measure("", 11)
	assert.Zero(t, w)
	assert.Equal(t, h1, h)

	w, h = m.Measure("Omaha", 0)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestGoFontMeasurer_Concurrent(t *testing.T) {
	m, err := NewGoFontMeasurer()
	require.NoError(t, err)

	want, _ := m.Measure("Springfield", 12)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, _ := m.Measure("Springfield", 12)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}

func TestFixedWidth(t *testing.T) {
	var m Measurer = FixedWidth{CharWidth: 0.5, LineHeight: 1}

	tests := []struct {
		name  string
		text  string
		size  float64
		wantW float64
		wantH float64
	}{
		{"Ascii", "Omaha", 10, 25, 10},
		{"Multibyte counts runes", "Zürich", 10, 30, 10},
		{"Zero size", "Omaha", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := m.Measure(tt.text, tt.size)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
