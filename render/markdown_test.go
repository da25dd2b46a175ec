package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownKeepsText(t *testing.T) {
	out := StripANSI(Markdown("Przysługuje **26 dni** urlopu.", 80))
	assert.Contains(t, out, "26 dni")
	assert.Contains(t, out, "urlopu")
	assert.NotContains(t, out, "**")
}

func TestMarkdownFlattensLinks(t *testing.T) {
	out := Markdown("Zobacz [kodeks](https://isap.sejm.gov.pl/kp) tutaj.", 80)
	plain := StripANSI(out)
	assert.Contains(t, plain, "https://isap.sejm.gov.pl/kp")
	assert.NotContains(t, plain, "[kodeks]")
	assert.Contains(t, out, red+"https://isap.sejm.gov.pl/kp")
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	text := strings.Repeat("słowo ", 60)
	out := StripANSI(Markdown(text, 40))
	assert.Greater(t, len(strings.Split(out, "\n")), 1)
}

func TestMarkdownTinyWidth(t *testing.T) {
	assert.NotPanics(t, func() { Markdown("abc", 0) })
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "red", StripANSI("\x1b[31mred\x1b[0m"))
}

func TestPostProcessInlineCode(t *testing.T) {
	assert.Equal(t, red+"code"+reset, postProcess("\x1b[44;3mcode\x1b[0m"))
}
