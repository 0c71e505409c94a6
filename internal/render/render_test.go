package render

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	darkBlue = color.RGBA{0, 0, 128, 255}
	white    = color.RGBA{255, 255, 255, 255}
)

func newTestRenderer(t *testing.T) Renderer {
	t.Helper()
	r, err := New(config.Default().Video)
	require.NoError(t, err)
	return r
}

func TestRenderSize(t *testing.T) {
	r := newTestRenderer(t)

	for _, text := range []string{"", "Q: What is 2+2?", strings.Repeat("word ", 400)} {
		img := r.Render(text, darkBlue, white)
		assert.Equal(t, image.Rect(0, 0, 1280, 720), img.Bounds())
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRenderer(t)

	a := r.Render("A: Paris is the capital of France", darkBlue, white)
	b := r.Render("A: Paris is the capital of France", darkBlue, white)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))

	other, err := New(config.Default().Video)
	require.NoError(t, err)
	c := other.Render("A: Paris is the capital of France", darkBlue, white)
	assert.True(t, bytes.Equal(a.Pix, c.Pix), "separate renderers must agree")
}

func TestRenderEmptyIsBackground(t *testing.T) {
	r := newTestRenderer(t)
	black := color.RGBA{0, 0, 0, 255}

	img := r.Render("", black, white)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 || img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d is not background", i/4)
		}
	}
}

func TestRenderDrawsText(t *testing.T) {
	r := newTestRenderer(t)

	img := r.Render("Q: hello", darkBlue, white)
	blank := r.Render("", darkBlue, white)
	assert.False(t, bytes.Equal(img.Pix, blank.Pix))

	// nothing is drawn inside the left margin
	for y := 0; y < 720; y++ {
		for x := 0; x < 55; x++ {
			assert.Equal(t, darkBlue, img.RGBAAt(x, y))
		}
	}
}

func TestRenderOverflowDoesNotPanic(t *testing.T) {
	r := newTestRenderer(t)
	assert.NotPanics(t, func() {
		r.Render(strings.Repeat("overflowing text ", 500), darkBlue, white)
	})
}

func TestWrap(t *testing.T) {
	// 1160px usable width at font size 48 fits 48 runes per line
	const maxWidth, fontSize = 1160.0, 48.0

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t ", nil},
		{"single line", "Q: What is 2+2?", []string{"Q: What is 2+2?"}},
		{
			name: "exactly at limit stays on one line",
			text: strings.Repeat("a", 23) + " " + strings.Repeat("b", 24),
			want: []string{strings.Repeat("a", 23) + " " + strings.Repeat("b", 24)},
		},
		{
			name: "one over the limit wraps",
			text: strings.Repeat("a", 24) + " " + strings.Repeat("b", 24),
			want: []string{strings.Repeat("a", 24), strings.Repeat("b", 24)},
		},
		{
			name: "long word gets its own line",
			text: "short " + strings.Repeat("x", 60) + " tail",
			want: []string{"short", strings.Repeat("x", 60), "tail"},
		},
		{
			name: "long first word has no blank line before it",
			text: strings.Repeat("y", 60),
			want: []string{strings.Repeat("y", 60)},
		},
		{
			name: "collapses repeated spaces",
			text: "a   b\n c",
			want: []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, maxWidth, fontSize))
		})
	}
}

func TestWrapNeverSplitsWords(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the narrator keeps talking about " +
		"many different subjects until the frame runs out of horizontal space several times over"
	words := strings.Fields(text)

	lines := Wrap(text, 600, 48)

	var rejoined []string
	for _, line := range lines {
		assert.LessOrEqual(t, estimateWidth(line, 48), 600.0)
		rejoined = append(rejoined, strings.Fields(line)...)
	}
	assert.Equal(t, words, rejoined)
}
