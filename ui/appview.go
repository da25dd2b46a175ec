package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lawchat/config"
	appmodel "lawchat/model"
	"lawchat/session"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model
	keys      *config.KeyBindingsConfig

	// UI Components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	showTimestamps bool
	showHelp       bool

	// Rendered markdown per message index. Messages stay immutable; the
	// cache is shared between copies of the view.
	rendered *renderCache

	// First viewport line of each message, rebuilt with the content
	messageOffsets []int

	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []appmodel.SearchMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	highlightedMessageIdx int
	highlightFlashCount   int

	// One-shot status bar note (clipboard results), cleared on the next key
	notice string
}

type renderCache struct {
	width   int
	entries map[int]string
}

func NewAppView(dataModel *appmodel.Model) AppView {
	keys := config.DefaultKeybindings()
	showTimestamps := true
	if cfg := dataModel.Config; cfg != nil {
		if cfg.Keybindings != nil {
			keys = cfg.Keybindings
		}
		showTimestamps = cfg.ShowTimestamps
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter inserts a newline; plain Enter is handled by the view and submits
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Szukaj: "
	messageSearchInput.CharLimit = 100

	return AppView{
		dataModel:             dataModel,
		keys:                  keys,
		textarea:              ta,
		viewport:              viewport.New(0, 0),
		loadingSpinner:        sp,
		showTimestamps:        showTimestamps,
		rendered:              &renderCache{entries: make(map[int]string)},
		messageSearchInput:    messageSearchInput,
		highlightedMessageIdx: -1,
	}
}

func (a AppView) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}

	cfg := a.dataModel.Config
	if cfg == nil || cfg.CheckHealth {
		cmds = append(cmds, a.dataModel.CheckHealth())
	}

	return tea.Batch(cmds...)
}

func (a AppView) View() string {
	if !a.ready {
		return "Ładowanie..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showMessageSearch {
		return a.renderMessageSearch(a.width, a.height)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTitle(),
		"",
		a.viewport.View(),
		a.textarea.View(),
		a.renderStatusBar(),
	)
}

func (a AppView) renderTitle() string {
	title := AssistantStyle.Render(appTitle)
	title += DimStyle.Render(fmt.Sprintf(" - sesja %s", session.Short(a.dataModel.SessionID)))

	if a.dataModel.HealthChecked {
		if a.dataModel.BackendOnline() {
			title += " " + OnlineStyle.Render("● połączono")
		} else {
			title += " " + OfflineStyle.Render("● brak połączenia z backendem")
		}
	}

	return title
}

func (a AppView) renderStatusBar() string {
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)

	var bar string
	if a.dataModel.Pending {
		bar = a.loadingSpinner.View() + " " + descStyle.Render(loadingText)
	} else {
		bar = fmt.Sprintf("Enter %s  Alt+Enter %s  %s %s  %s %s",
			descStyle.Render(submitHint),
			descStyle.Render(newlineHint),
			a.keys.DisplayActionKey("help"), descStyle.Render(helpHint),
			a.keys.DisplayActionKey("quit"), descStyle.Render(quitHint),
		)
	}

	if a.notice != "" {
		bar += "  " + HighlightStyle.Render(a.notice)
	}

	return StatusStyle.Render(bar)
}
