// Package repl is the plain line-mode front end (lawchat --plain): one
// question per line, answers printed as rendered markdown.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"lawchat/config"
	appmodel "lawchat/model"
	"lawchat/render"
)

const defaultWidth = 80

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	expertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// REPL drives the model one line at a time
type REPL struct {
	model       *appmodel.Model
	out         io.Writer
	width       int
	line        *liner.State
	historyFile string
}

// New opens the line editor and loads history from historyFile
func New(m *appmodel.Model, historyFile string) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &REPL{
		model:       m,
		out:         os.Stdout,
		width:       defaultWidth,
		line:        line,
		historyFile: historyFile,
	}
	r.loadHistory()
	return r
}

func (r *REPL) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory() {
	if r.historyFile == "" {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[REPL] Failed to save history: %v", err)
		}
		return
	}
	defer f.Close()

	if _, err := r.line.WriteHistory(f); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[REPL] Failed to write history: %v", err)
	}
}

// Close saves history and restores the terminal
func (r *REPL) Close() {
	if r.line == nil {
		return
	}
	r.saveHistory()
	r.line.Close()
}

// Run reads lines until /quit, /exit or end of input. Ctrl+C drops the
// current line only.
func (r *REPL) Run() error {
	r.printBanner()

	for {
		input, err := r.line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			r.line.AppendHistory(input)
		}

		if !r.HandleLine(input) {
			return nil
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, promptStyle.Render("Asystent Prawa Pracy"))
	fmt.Fprintln(r.out, dimStyle.Render("Wpisz pytanie i naciśnij Enter. /help wyświetla polecenia, /quit kończy."))
	fmt.Fprintln(r.out)
}

// HandleLine processes one input line. It returns false when the user
// asked to leave.
func (r *REPL) HandleLine(input string) bool {
	trimmed := strings.TrimSpace(input)

	switch trimmed {
	case "":
		return true
	case "/quit", "/exit":
		return false
	case "/help":
		r.printHelp()
		return true
	case "/session":
		fmt.Fprintln(r.out, dimStyle.Render("Sesja: "+r.model.SessionID))
		return true
	case "/health":
		r.printHealth()
		return true
	}

	fmt.Fprintln(r.out, dimStyle.Render("Analizuję przepisy..."))

	reply, ok := r.model.Ask(trimmed)
	if !ok {
		// Only possible while another question is pending
		return true
	}

	r.printReply(reply)
	return true
}

func (r *REPL) printReply(reply appmodel.Message) {
	fmt.Fprintln(r.out, expertStyle.Render("Ekspert:"))

	if reply.Failed {
		fmt.Fprintln(r.out, errorStyle.Render(reply.Text))
		fmt.Fprintln(r.out)
		return
	}

	fmt.Fprintln(r.out, render.Markdown(reply.Text, r.width))

	if len(reply.Sources) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, dimStyle.Render("Źródła:"))
		for _, src := range reply.Sources {
			fmt.Fprintln(r.out, dimStyle.Render("- "+src))
		}
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printHealth() {
	cmd := r.model.CheckHealth()
	if cmd == nil {
		return
	}
	msg, _ := cmd().(appmodel.HealthCheckedMsg)
	r.model.ApplyHealth(msg)

	if r.model.BackendOnline() {
		fmt.Fprintln(r.out, dimStyle.Render("Backend: połączono"))
	} else {
		fmt.Fprintln(r.out, errorStyle.Render("Backend: brak połączenia"))
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, dimStyle.Render(strings.Join([]string{
		"/health   sprawdź połączenie z backendem",
		"/session  pokaż identyfikator sesji",
		"/quit     zakończ (również /exit lub Ctrl+D)",
	}, "\n")))
}
