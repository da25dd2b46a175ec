package model

import (
	"context"
	"time"

	"lawchat/askapi"
	"lawchat/config"
)

// ErrorText replaces the answer whenever a request fails, whatever the cause
const ErrorText = "Wystąpił błąd podczas łączenia z backendem."

// Model holds the conversation state and the dispatch logic. It is owned by
// a single event loop (bubbletea or the line-mode REPL) and is not safe for
// concurrent use.
type Model struct {
	// Core dependencies
	Config    *config.Config
	Client    askapi.Asker
	SessionID string // Resolved once at startup and sent with every question

	// Application data
	Conversation *Conversation

	// Runtime state
	Pending       bool
	Health        *askapi.HealthStatus
	HealthErr     error
	HealthChecked bool

	Version string

	seq    int
	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time
}

// NewModel creates a Model. cfg may be nil when no configuration is needed (tests, line mode).
func NewModel(cfg *config.Config, client askapi.Asker, sessionID, version string) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		Config:       cfg,
		Client:       client,
		SessionID:    sessionID,
		Conversation: NewConversation(),
		Version:      version,
		ctx:          ctx,
		cancel:       cancel,
		now:          time.Now,
	}
}

// Close aborts any request still in flight. Used on quit only.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func debugf(format string, args ...any) {
	if config.DebugLog != nil {
		config.DebugLog.Printf(format, args...)
	}
}
