package testutil

import (
	"context"
	"errors"
	"sync"

	"lawchat/askapi"
)

// ErrUnreachable simulates a transport failure
var ErrUnreachable = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

// MockAsker implements askapi.Asker for testing and records every request
type MockAsker struct {
	AskFunc    func(ctx context.Context, req askapi.Request) (*askapi.Response, error)
	HealthFunc func(ctx context.Context) (*askapi.HealthStatus, error)

	mu       sync.Mutex
	requests []askapi.Request
}

// NewMockAsker answers every question with a fixed mock response
func NewMockAsker() *MockAsker {
	return &MockAsker{
		AskFunc: func(ctx context.Context, req askapi.Request) (*askapi.Response, error) {
			return &askapi.Response{Answer: "Mock answer"}, nil
		},
		HealthFunc: func(ctx context.Context) (*askapi.HealthStatus, error) {
			return &askapi.HealthStatus{Status: "ok", Database: "connected"}, nil
		},
	}
}

// Answering returns a mock that always replies with answer and sources
func Answering(answer string, sources ...string) *MockAsker {
	m := NewMockAsker()
	m.AskFunc = func(ctx context.Context, req askapi.Request) (*askapi.Response, error) {
		return &askapi.Response{Answer: answer, Sources: sources}, nil
	}
	return m
}

// Failing returns a mock whose requests all fail with err
func Failing(err error) *MockAsker {
	m := NewMockAsker()
	m.AskFunc = func(ctx context.Context, req askapi.Request) (*askapi.Response, error) {
		return nil, err
	}
	m.HealthFunc = func(ctx context.Context) (*askapi.HealthStatus, error) {
		return nil, err
	}
	return m
}

func (m *MockAsker) Ask(ctx context.Context, req askapi.Request) (*askapi.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.AskFunc(ctx, req)
}

func (m *MockAsker) Health(ctx context.Context) (*askapi.HealthStatus, error) {
	return m.HealthFunc(ctx)
}

// Requests returns the requests seen so far
func (m *MockAsker) Requests() []askapi.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]askapi.Request(nil), m.requests...)
}

func (m *MockAsker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
