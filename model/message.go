package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation. Once appended it is never edited.
type Message struct {
	Role      Role
	Text      string
	Sources   []string // Legal references the answer was based on, in service order
	Timestamp time.Time
	Failed    bool // Synthetic reply standing in for a failed request
}

func (m Message) clone() Message {
	if m.Sources != nil {
		m.Sources = append([]string(nil), m.Sources...)
	}
	return m
}
