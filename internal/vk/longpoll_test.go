package vk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbot/internal/testutil"
)

func TestParseEvents(t *testing.T) {
	updates := []json.RawMessage{
		json.RawMessage(`{"type":"message_new","object":{"message":{"from_id":42,"text":"Новый вопрос"}}}`),
		json.RawMessage(`{"type":"message_typing_state","object":{}}`),
		json.RawMessage(`{"type":"message_new","object":{"message":{"from_id":7,"text":"париж"}}}`),
		json.RawMessage(`not json`),
		json.RawMessage(`{"type":"message_new","object":{"message":{"text":"без отправителя"}}}`),
	}

	events := parseEvents(updates)

	assert.Equal(t, []Event{
		{UserID: 42, Text: "Новый вопрос"},
		{UserID: 7, Text: "париж"},
	}, events)
}

func TestParseEvents_Empty(t *testing.T) {
	assert.Empty(t, parseEvents(nil))
	assert.Empty(t, parseEvents([]json.RawMessage{}))
}

// fakeVKState records what the fake long-poll server saw and serves
// scripted poll responses in order. Exhausting the script yields empty
// update batches.
type fakeVKState struct {
	mu          sync.Mutex
	serverCalls int
	pollTS      []string
	responses   []string
	next        int
}

func (s *fakeVKState) snapshot() (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverCalls, append([]string(nil), s.pollTS...)
}

func newFakeVKServer(t *testing.T, pollResponses ...string) (*httptest.Server, *fakeVKState) {
	t.Helper()

	state := &fakeVKState{responses: pollResponses}

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/method/groups.getLongPollServer", func(w http.ResponseWriter, _ *http.Request) {
		state.mu.Lock()
		state.serverCalls++
		state.mu.Unlock()
		fmt.Fprintf(w, `{"response":{"key":"test-key","server":"%s/longpoll","ts":"1"}}`, srv.URL)
	})
	mux.HandleFunc("/longpoll", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		state.pollTS = append(state.pollTS, r.URL.Query().Get("ts"))
		resp := `{"ts":"99","updates":[]}`
		if state.next < len(state.responses) {
			resp = state.responses[state.next]
			state.next++
		}
		state.mu.Unlock()
		io.WriteString(w, resp)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, state
}

func newTestListener(srv *httptest.Server) *Listener {
	client := NewClient("test-token", testutil.NewTestLogger())
	client.apiURL = srv.URL + "/method/"

	l := NewListener(client, "1", testutil.NewTestLogger())
	l.retryDelay = 10 * time.Millisecond
	return l
}

func messageNewUpdate(ts string, fromID int64, text string) string {
	return fmt.Sprintf(`{"ts":"%s","updates":[{"type":"message_new","object":{"message":{"from_id":%d,"text":"%s"}}}]}`, ts, fromID, text)
}

func TestListenerRun(t *testing.T) {
	srv, state := newFakeVKServer(t,
		messageNewUpdate("2", 42, "Новый вопрос"),
		`{"failed":2}`,
		`{"failed":1,"ts":"9"}`,
		messageNewUpdate("10", 7, "ответ"),
		messageNewUpdate("11", 8, "ещё"),
	)
	listener := newTestListener(srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var handled []int64
	err := listener.Run(ctx, func(_ context.Context, ev Event) error {
		handled = append(handled, ev.UserID)
		switch ev.UserID {
		case 7:
			// A failing handler must not stop the loop
			return errors.New("handler blew up")
		case 8:
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	// Events before, during and after the failure are all delivered
	assert.Equal(t, []int64{42, 7, 8}, handled)

	serverCalls, pollTS := state.snapshot()
	// failed:2 expires the session and forces a second getLongPollServer
	assert.Equal(t, 2, serverCalls)
	// ts advances with each batch, restarts at the reconnect, and jumps
	// to the value carried by the failed:1 response
	assert.Equal(t, []string{"1", "2", "1", "9", "10"}, pollTS)
}

func TestListenerRun_RetriesAfterPollFailure(t *testing.T) {
	srv, state := newFakeVKServer(t,
		`not json at all`,
		messageNewUpdate("2", 42, "Новый вопрос"),
	)
	listener := newTestListener(srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	started := time.Now()
	var handled []int64
	err := listener.Run(ctx, func(_ context.Context, ev Event) error {
		handled = append(handled, ev.UserID)
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	// The broken response is retried, not fatal, and the retry waits out
	// the configured delay instead of hammering the server
	assert.Equal(t, []int64{42}, handled)
	assert.GreaterOrEqual(t, time.Since(started), listener.retryDelay)

	_, pollTS := state.snapshot()
	assert.Equal(t, []string{"1", "1"}, pollTS)
}

func TestListenerRun_CancelDuringBackoff(t *testing.T) {
	srv, _ := newFakeVKServer(t, `broken`)
	listener := newTestListener(srv)
	listener.retryDelay = 10 * time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		done <- listener.Run(ctx, func(context.Context, Event) error { return nil })
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop during backoff")
	}
}
