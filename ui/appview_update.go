package ui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"lawchat/config"
	appmodel "lawchat/model"
)

// markdownRenderedMsg delivers an answer rendered for a given content width
type markdownRenderedMsg struct {
	MessageIndex int
	Width        int
	Rendered     string
}

var errNothingToCopy = errors.New("brak odpowiedzi do skopiowania")

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		// The spinner stops by dropping ticks once nothing is pending
		if !a.dataModel.Pending {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(a.viewport.AtBottom())
		return a, cmd

	case appmodel.AnswerMsg:
		reply := a.dataModel.HandleAnswer(msg)
		a.updateViewportContent(true)
		if reply.Failed {
			return a, nil
		}
		return a, a.renderMarkdownAsync(a.dataModel.Conversation.Len()-1, reply.Text)

	case markdownRenderedMsg:
		if msg.Width != a.rendered.width {
			// Stale: the window was resized while rendering
			return a, nil
		}
		a.rendered.entries[msg.MessageIndex] = msg.Rendered
		gotoBottom := a.highlightedMessageIdx < 0 && msg.MessageIndex == a.dataModel.Conversation.Len()-1
		a.updateViewportContent(gotoBottom)
		return a, nil

	case appmodel.HealthCheckedMsg:
		a.dataModel.ApplyHealth(msg)
		return a, nil

	case appmodel.ClipboardCopiedMsg:
		a.notice = clipboardNotice(msg)
		return a, nil

	case appmodel.FlashTickMsg:
		if a.highlightFlashCount > 0 && a.highlightFlashCount < 6 {
			a.highlightFlashCount++
			a.updateViewportContent(false)
			return a, flashTick()
		}
		a.highlightedMessageIdx = -1
		a.highlightFlashCount = 0
		a.updateViewportContent(false)
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	// Title (1), separator (1), textarea (3) and status bar (1)
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-6, 1)
	a.textarea.SetWidth(a.width)
	a.ready = true

	var cmds []tea.Cmd
	if width := a.contentWidth(); width != a.rendered.width {
		a.rendered.width = width
		a.rendered.entries = make(map[int]string)
		for i, msg := range a.dataModel.Conversation.Messages() {
			if msg.Role == appmodel.RoleAssistant && !msg.Failed {
				cmds = append(cmds, a.renderMarkdownAsync(i, msg.Text))
			}
		}
	}

	a.updateViewportContent(true)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	if pressed == "ctrl+c" || a.keys.Matches("quit", pressed) {
		a.dataModel.Close()
		return a, tea.Quit
	}

	if a.showHelp {
		if pressed == "esc" || a.keys.Matches("help", pressed) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.showMessageSearch {
		return a.handleMessageSearchKey(msg)
	}

	a.notice = ""

	switch {
	case pressed == "enter":
		// Rejected submissions (blank, or a question still pending) keep the draft
		draft := a.textarea.Value()
		if !a.dataModel.CanSubmit(draft) {
			return a, nil
		}
		cmd := a.dataModel.Submit(draft)
		a.textarea.Reset()
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)

	case a.keys.Matches("help", pressed):
		a.showHelp = true
		return a, nil

	case a.keys.Matches("search_messages", pressed):
		a.showMessageSearch = true
		a.messageSearchInput.SetValue("")
		a.messageSearchResults = nil
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
		return a, a.messageSearchInput.Focus()

	case a.keys.Matches("yank_last_answer", pressed):
		last, ok := a.dataModel.LastAnswer()
		if !ok {
			return a, func() tea.Msg {
				return appmodel.ClipboardCopiedMsg{What: "answer", Err: errNothingToCopy}
			}
		}
		return a, copyToClipboard("answer", appmodel.FormatAnswer(last))

	case a.keys.Matches("yank_transcript", pressed):
		if a.dataModel.Conversation.Len() == 0 {
			return a, func() tea.Msg {
				return appmodel.ClipboardCopiedMsg{What: "transcript", Err: errNothingToCopy}
			}
		}
		return a, copyToClipboard("transcript", a.dataModel.Transcript())

	case a.keys.Matches("clear_input", pressed):
		a.textarea.Reset()
		return a, nil

	case a.keys.Matches("scroll_down", pressed), a.keys.Matches("scroll_down_arrow", pressed):
		a.viewport.SetYOffset(a.viewport.YOffset + 1)
		return a, nil

	case a.keys.Matches("scroll_up", pressed), a.keys.Matches("scroll_up_arrow", pressed):
		a.viewport.SetYOffset(a.viewport.YOffset - 1)
		return a, nil

	case a.keys.Matches("half_page_down", pressed):
		a.viewport.HalfViewDown()
		return a, nil

	case a.keys.Matches("half_page_up", pressed):
		a.viewport.HalfViewUp()
		return a, nil

	case a.keys.Matches("page_down", pressed):
		a.viewport.ViewDown()
		return a, nil

	case a.keys.Matches("page_up", pressed):
		a.viewport.ViewUp()
		return a, nil

	case a.keys.Matches("scroll_to_top", pressed):
		a.viewport.GotoTop()
		return a, nil

	case a.keys.Matches("scroll_to_bottom", pressed):
		a.viewport.GotoBottom()
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleMessageSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	switch {
	case pressed == "esc":
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		return a, nil

	case a.keys.Matches("search_up", pressed):
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		a.keepSearchSelectionVisible()
		return a, nil

	case a.keys.Matches("search_down", pressed):
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
		}
		a.keepSearchSelectionVisible()
		return a, nil

	case pressed == "enter":
		if a.selectedSearchIdx < 0 || a.selectedSearchIdx >= len(a.messageSearchResults) {
			return a, nil
		}
		return a.jumpToMessage(a.messageSearchResults[a.selectedSearchIdx].MessageIndex)
	}

	var cmd tea.Cmd
	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)
	a.messageSearchResults = a.dataModel.Search(a.messageSearchInput.Value())
	a.selectedSearchIdx = 0
	a.messageSearchScrollIdx = 0
	return a, cmd
}

// jumpToMessage closes the search, scrolls the message to the top of the
// viewport and starts the highlight flash.
func (a AppView) jumpToMessage(idx int) (tea.Model, tea.Cmd) {
	a.showMessageSearch = false
	a.messageSearchInput.Blur()
	a.highlightedMessageIdx = idx
	a.highlightFlashCount = 1
	a.updateViewportContent(false)

	if idx >= 0 && idx < len(a.messageOffsets) {
		a.viewport.SetYOffset(a.messageOffsets[idx])
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Search] Jumped to message %d", idx)
	}

	return a, flashTick()
}

func (a *AppView) keepSearchSelectionVisible() {
	visible := searchVisibleResults(a.height)
	if a.selectedSearchIdx < a.messageSearchScrollIdx {
		a.messageSearchScrollIdx = a.selectedSearchIdx
	}
	if a.selectedSearchIdx >= a.messageSearchScrollIdx+visible {
		a.messageSearchScrollIdx = a.selectedSearchIdx - visible + 1
	}
}

func flashTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		return appmodel.FlashTickMsg{}
	})
}

func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return appmodel.ClipboardCopiedMsg{What: what, Err: clipboardWrite(text)}
	}
}

func clipboardNotice(msg appmodel.ClipboardCopiedMsg) string {
	if msg.Err != nil {
		if errors.Is(msg.Err, errNothingToCopy) {
			return "Brak odpowiedzi do skopiowania"
		}
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Clipboard] Copy failed: %v", msg.Err)
		}
		return "Nie udało się skopiować do schowka"
	}
	if msg.What == "transcript" {
		return "Skopiowano rozmowę"
	}
	return "Skopiowano odpowiedź"
}
