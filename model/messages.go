package model

import "lawchat/askapi"

// AnswerMsg carries the outcome of one dispatched question back to the event loop
type AnswerMsg struct {
	Seq      int
	Question string
	Response *askapi.Response
	Err      error
}

type HealthCheckedMsg struct {
	Status *askapi.HealthStatus
	Err    error
}

type ClipboardCopiedMsg struct {
	What string // "answer" or "transcript"
	Err  error
}

type FlashTickMsg struct{}
