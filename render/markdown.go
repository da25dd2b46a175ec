// Package render turns answer markdown into terminal text. Shared by the TUI
// and line mode.
package render

import (
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s\x1b]+)`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

const (
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

const minWidth = 20

// Markdown renders content for a terminal column of the given width
func Markdown(content string, width int) string {
	if width < minWidth {
		width = minWidth
	}

	// Links become bare URLs so terminals can make them clickable
	content = mdLinkRegex.ReplaceAllString(content, "$2")

	// Autolink off keeps URLs as plain text
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	out := gomarkdown.Render(p.Parse([]byte(content)), r)

	return postProcess(string(out))
}

func postProcess(rendered string) string {
	// Inline code: blue background + italic -> red text
	rendered = inlineCodeRegex.ReplaceAllString(rendered, red+"$1"+reset)

	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = urlRegex.ReplaceAllString(line, red+"$1"+reset)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n ")
}

// StripANSI removes SGR escape sequences
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
