package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CheckHealth checks the service once; the UI shows the result in the status bar
func (m *Model) CheckHealth() tea.Cmd {
	if m.Client == nil {
		return nil
	}
	client := m.Client
	ctx := m.ctx
	return func() tea.Msg {
		status, err := client.Health(ctx)
		return HealthCheckedMsg{Status: status, Err: err}
	}
}

func (m *Model) ApplyHealth(msg HealthCheckedMsg) {
	m.HealthChecked = true
	m.Health = msg.Status
	m.HealthErr = msg.Err
	if msg.Err != nil {
		debugf("[Health] Backend health check failed: %v", msg.Err)
	}
}

// BackendOnline is true only after a successful health check
func (m *Model) BackendOnline() bool {
	return m.HealthChecked && m.HealthErr == nil && m.Health.OK()
}

// LastAnswer returns the newest assistant reply that is not a failure placeholder
func (m *Model) LastAnswer() (Message, bool) {
	for i := m.Conversation.Len() - 1; i >= 0; i-- {
		msg := m.Conversation.At(i)
		if msg.Role == RoleAssistant && !msg.Failed {
			return msg, true
		}
	}
	return Message{}, false
}

// FormatAnswer renders an answer with its sources as plain text
func FormatAnswer(msg Message) string {
	var b strings.Builder
	b.WriteString(msg.Text)
	if len(msg.Sources) > 0 {
		b.WriteString("\n\nŹródła:\n")
		for _, s := range msg.Sources {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Transcript renders the whole conversation as plain text
func (m *Model) Transcript() string {
	var b strings.Builder
	for i, msg := range m.Conversation.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := "Ty"
		if msg.Role == RoleAssistant {
			label = "Ekspert"
		}
		fmt.Fprintf(&b, "[%s] %s:\n%s", msg.Timestamp.Format("2006-01-02 15:04"), label, FormatAnswer(msg))
	}
	return b.String()
}
