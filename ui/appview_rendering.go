package ui

import (
	"fmt"
	"strings"
	"time"

	text "github.com/MichaelMure/go-term-text"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"lawchat/config"
	appmodel "lawchat/model"
	"lawchat/render"
)

const (
	userBar   = "\x1b[32;1m┃\x1b[0m"
	minColumn = 20
)

// contentWidth is the column available to a bubble body
func (a AppView) contentWidth() int {
	return max(a.width-4, minColumn)
}

// updateViewportContent rebuilds the bubble list from the conversation and
// the pending flag. It also records where each message starts so search can
// scroll to it.
func (a *AppView) updateViewportContent(gotoBottom bool) {
	msgs := a.dataModel.Conversation.Messages()
	if len(msgs) == 0 && !a.dataModel.Pending {
		a.messageOffsets = nil
		a.viewport.SetContent(DimStyle.Render(wrap(emptyText, a.contentWidth())))
		return
	}

	var content strings.Builder
	offsets := make([]int, len(msgs))
	line := 0

	for i, msg := range msgs {
		offsets[i] = line
		bubble := a.renderBubble(i, msg)
		content.WriteString(bubble)
		line += strings.Count(bubble, "\n")
	}

	if a.dataModel.Pending {
		content.WriteString(a.renderPendingBubble())
	}

	a.messageOffsets = offsets
	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a AppView) renderBubble(idx int, msg appmodel.Message) string {
	highlightPrefix := ""
	if idx == a.highlightedMessageIdx && a.highlightFlashCount%2 == 1 {
		highlightPrefix = HighlightStyle.Render(">>> ")
	}

	header := highlightPrefix
	if a.showTimestamps && !msg.Timestamp.IsZero() {
		header += DimStyle.Render(msg.Timestamp.Format("[15:04]")) + " "
	}

	width := a.contentWidth()

	if msg.Role == appmodel.RoleUser {
		header += UserStyle.Render(userLabel)
		return formatUserMessage(header, wrap(msg.Text, width))
	}

	header += AssistantStyle.Render(expertLabel)

	var body string
	switch {
	case msg.Failed:
		body = ErrorStyle.Render(msg.Text)
	default:
		rendered, ok := a.rendered.entries[idx]
		if !ok {
			// Plain text until the markdown render arrives
			rendered = wrap(msg.Text, width)
		}
		body = rendered
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(body + "\n")
	if len(msg.Sources) > 0 {
		b.WriteString(renderSources(msg.Sources, width))
	}
	b.WriteString("\n")
	return b.String()
}

// wrap breaks plain text on word boundaries
func wrap(s string, width int) string {
	wrapped, _ := text.Wrap(s, width)
	return wrapped
}

func (a AppView) renderPendingBubble() string {
	header := AssistantStyle.Render(expertLabel)
	return fmt.Sprintf("%s\n%s %s\n\n", header, a.loadingSpinner.View(), DimStyle.Render(loadingText))
}

// renderSources lists sources one per line, each cut to fit the column
func renderSources(sources []string, width int) string {
	var b strings.Builder
	b.WriteString("\n" + DimStyle.Render(sourcesHeading) + "\n")
	for _, src := range sources {
		line := runewidth.Truncate(strings.TrimSpace(src), width-2, "…")
		b.WriteString(DimStyle.Render("• "+line) + "\n")
	}
	return b.String()
}

func formatUserMessage(header, content string) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s\n", userBar, header))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", userBar, line))
	}
	result.WriteString("\n")
	return result.String()
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.contentWidth()
	return func() tea.Msg {
		startTime := time.Now()
		rendered := render.Markdown(content, width)

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Render] Message %d (%d chars) rendered in %v", messageIndex, len(content), time.Since(startTime))
		}

		return markdownRenderedMsg{
			MessageIndex: messageIndex,
			Width:        width,
			Rendered:     rendered,
		}
	}
}
