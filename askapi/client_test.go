package askapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/ask", opts...)
	require.NoError(t, err)
	return c
}

func TestAskSendsQuestionAndSession(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"question":"ile urlopu?","answer":"A","sources":["Art. 152"]}`))
	})

	resp, err := c.Ask(context.Background(), Request{Question: "ile urlopu?", SessionID: "session_1"})
	require.NoError(t, err)

	assert.Equal(t, "A", resp.Answer)
	assert.Equal(t, []string{"Art. 152"}, resp.Sources)
	assert.Equal(t, map[string]any{"question": "ile urlopu?", "session_id": "session_1"}, got)
}

func TestAskOmitsEmptySessionID(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"answer":"ok"}`))
	})

	resp, err := c.Ask(context.Background(), Request{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Answer)
	assert.Nil(t, resp.Sources)
	assert.NotContains(t, raw, "session_id")
}

func TestAskFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error with fastapi detail",
			status: http.StatusInternalServerError,
			body:   `{"detail":"rag engine exploded"}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, 500, se.StatusCode)
				assert.Equal(t, "rag engine exploded", se.Detail)
			},
		},
		{
			name:   "validation error with structured detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","question"],"msg":"field required"}]}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, 422, se.StatusCode)
				assert.Contains(t, se.Detail, "field required")
			},
		},
		{
			name:   "plain text error",
			status: http.StatusBadGateway,
			body:   "bad gateway\n",
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, "bad gateway", se.Detail)
				assert.Contains(t, se.Error(), "502")
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   "<html>",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "missing answer",
			status: http.StatusOK,
			body:   `{"question":"q"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "wrong sources type",
			status: http.StatusOK,
			body:   `{"answer":"a","sources":"Art. 1"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			resp, err := c.Ask(context.Background(), Request{Question: "q"})
			require.Error(t, err)
			assert.Nil(t, resp)
			tt.check(t, err)
		})
	}
}

func TestAskUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url + "/ask")
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), Request{Question: "q"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestAskTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.Ask(context.Background(), Request{Question: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.OK())
	assert.Equal(t, "connected", status.Database)
}

func TestHealthDown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	status, err := c.Health(context.Background())
	require.Error(t, err)
	assert.False(t, status.OK())
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/ask", c.Endpoint())
	assert.Equal(t, "http://localhost:8000/health", c.healthURL)

	c, err = NewClient("https://law.example/api/v1/ask")
	require.NoError(t, err)
	assert.Equal(t, "https://law.example/health", c.healthURL)

	_, err = NewClient("ftp://law.example/ask")
	assert.Error(t, err)

	_, err = NewClient("http:///ask")
	assert.Error(t, err)

	_, err = NewClient("://bad")
	assert.Error(t, err)
}
