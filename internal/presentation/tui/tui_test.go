package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/library"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestRenderTape_Ascii(t *testing.T) {
	assert.Equal(t, "1", RenderTape("1BBBB", 0, 'B', termenv.Ascii))
	assert.Equal(t, "1BBB", RenderTape("1BBBB", 3, 'B', termenv.Ascii), "keeps blanks up to the head")
	assert.Equal(t, "E1001E", RenderTape("E1001EBB", 4, 'B', termenv.Ascii))
	assert.Equal(t, "", RenderTape("BBB", 7, 'B', termenv.Ascii))
}

func TestRenderTape_Styled(t *testing.T) {
	out := RenderTape("ab", 1, 'B', termenv.TrueColor)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "b")
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "01", Trim("01__", '_'))
}

func TestDescribe(t *testing.T) {
	out := Describe(library.MustGet(library.EqualRuns))

	assert.True(t, strings.HasPrefix(out, "# equal-runs\n"))
	assert.Contains(t, out, "| states | 8 (+ halt) |")
	assert.Contains(t, out, "| sentinel | `E` |")
	assert.Contains(t, out, "| skip | `E` | `E` | R | take-zero |")
	assert.Contains(t, out, "| wipe | `E` | `B` | R | halt |")

	minimal := Describe(&domain.Definition{Name: "m", States: []domain.StateDefinition{{}}})
	assert.NotContains(t, minimal, "sentinel")
	assert.Contains(t, minimal, "| blank | `B` |")
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	WriteBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "|___/")
}
