package model

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lawchat/askapi"
)

// CanSubmit reports whether Submit would accept the draft
func (m *Model) CanSubmit(draft string) bool {
	return !m.Pending && strings.TrimSpace(draft) != ""
}

// Submit appends the user's question and returns the command that sends it.
// It returns nil, and changes nothing, for blank input or while a previous
// question is still pending. The network call starts only when the returned
// command runs.
func (m *Model) Submit(utterance string) tea.Cmd {
	question := strings.TrimSpace(utterance)
	if question == "" {
		return nil
	}
	if m.Pending {
		debugf("[Dispatch] Submit rejected: request %d still pending", m.seq)
		return nil
	}

	m.Conversation.Append(Message{
		Role:      RoleUser,
		Text:      question,
		Timestamp: m.now(),
	})
	m.Pending = true
	m.seq++

	seq := m.seq
	client := m.Client
	ctx := m.ctx
	req := askapi.Request{Question: question, SessionID: m.SessionID}

	debugf("[Dispatch] Sending request %d (%d chars)", seq, len(question))

	return func() tea.Msg {
		resp, err := client.Ask(ctx, req)
		return AnswerMsg{
			Seq:      seq,
			Question: question,
			Response: resp,
			Err:      err,
		}
	}
}

// HandleAnswer appends the reply for a finished request and clears the
// pending flag. Any failure becomes the fixed ErrorText reply.
func (m *Model) HandleAnswer(msg AnswerMsg) Message {
	reply := Message{
		Role:      RoleAssistant,
		Timestamp: m.now(),
	}

	switch {
	case msg.Err != nil:
		debugf("[Dispatch] Request %d (%d-char question) failed: %v", msg.Seq, len(msg.Question), msg.Err)
		reply.Text = ErrorText
		reply.Failed = true
	case msg.Response == nil:
		debugf("[Dispatch] Request %d returned no response", msg.Seq)
		reply.Text = ErrorText
		reply.Failed = true
	default:
		debugf("[Dispatch] Request %d answered (%d chars, %d sources)", msg.Seq, len(msg.Response.Answer), len(msg.Response.Sources))
		reply.Text = msg.Response.Answer
		reply.Sources = msg.Response.Sources
	}

	m.Conversation.Append(reply)
	m.Pending = false
	return reply
}

// Ask runs Submit and the resulting request synchronously. Line mode uses
// it; the TUI goes through bubbletea instead. ok is false when the input
// was rejected.
func (m *Model) Ask(utterance string) (reply Message, ok bool) {
	cmd := m.Submit(utterance)
	if cmd == nil {
		return Message{}, false
	}
	answer, _ := cmd().(AnswerMsg)
	return m.HandleAnswer(answer), true
}
