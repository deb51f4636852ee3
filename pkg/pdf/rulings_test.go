package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulingScannerStrokes(t *testing.T) {
	content := []byte(`q 1 0 0 1 10 20 cm 2 w
0 0 m 100 0 l S
Q
BT /F1 12 Tf 50 50 Td (not 0 0 m 5 5 l S) Tj ET
10 10 m 60 60 l S`)

	lines := newRulingScanner(842).Scan(content)
	require.Len(t, lines, 1, "diagonals and text are ignored")
	assert.InDelta(t, 10.0, lines[0].X0, 0.001)
	assert.InDelta(t, 110.0, lines[0].X1, 0.001)
	assert.InDelta(t, 822.0, lines[0].Y0, 0.001)
	assert.Equal(t, 2.0, lines[0].Width)
}

func TestRulingScannerRectangles(t *testing.T) {
	content := []byte("50 700 100 20 re S\n% comment 0 0 m 9 0 l S\n50 600 100 1 re f\n50 500 100 50 re f\n")

	lines := newRulingScanner(800).Scan(content)
	require.Len(t, lines, 5, "four stroked edges and one thin fill")

	fill := lines[4]
	assert.True(t, fill.IsHorizontal(FloatTolerance))
	assert.InDelta(t, 199.5, fill.Y0, 0.001)
	assert.InDelta(t, 50.0, fill.X0, 0.001)
	assert.InDelta(t, 150.0, fill.X1, 0.001)
}

func TestRulingScannerInlineImage(t *testing.T) {
	content := []byte("BI /W 1 /H 1 /BPC 8 /CS /G ID \x00\x01 l S EI\n0 0 m 0 50 l S\n")

	lines := newRulingScanner(100).Scan(content)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].IsVertical(FloatTolerance))
}
