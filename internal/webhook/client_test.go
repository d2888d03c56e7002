// internal/webhook/client_test.go
package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"arena/internal/debate"
	"arena/internal/logging"
)

func TestObserveSendsPayload(t *testing.T) {
	var mu sync.Mutex
	var received []Payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
			return
		}
		var p Payload
		if err := json.Unmarshal(body, &p); err != nil {
			t.Errorf("failed to unmarshal body: %v", err)
			return
		}
		mu.Lock()
		received = append(received, p)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, "run-1", nil)
	c.Observe(debate.Message{Speaker: "Affirmative", Role: debate.RoleProponent, Text: "hi"})
	c.Observe(debate.Done{})
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(received))
	}

	var msg *Payload
	for i := range received {
		if received[i].Event.Type == "msg" {
			msg = &received[i]
		}
	}
	if msg == nil {
		t.Fatal("message record not delivered")
	}
	if msg.RunID != "run-1" || msg.Timestamp == 0 {
		t.Errorf("unexpected envelope %+v", msg)
	}
	if msg.Event.Agent != "Affirmative" || msg.Event.Role != "AffirmativeAgent" || msg.Event.Text != "hi" {
		t.Errorf("unexpected record %+v", msg.Event)
	}
}

func TestSeqFollowsEmitOrder(t *testing.T) {
	var mu sync.Mutex
	var received []Payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}
		mu.Lock()
		received = append(received, p)
		mu.Unlock()
	}))
	defer server.Close()

	const n = 20
	c := NewClient(server.URL, "run", nil)
	for i := 1; i <= n; i++ {
		c.Emit(debate.Record{Type: "status", Text: strconv.Itoa(i)})
	}
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != n {
		t.Fatalf("expected %d deliveries, got %d", n, len(received))
	}
	slices.SortFunc(received, func(a, b Payload) int { return int(a.Seq) - int(b.Seq) })
	for i, p := range received {
		if p.Seq != uint64(i+1) || p.Event.Text != strconv.Itoa(i+1) {
			t.Errorf("delivery %d: seq %d carries %q", i, p.Seq, p.Event.Text)
		}
	}
}

func TestEmitAfterClose(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := NewClient(server.URL, "run", nil)
	c.Close()
	c.Emit(debate.Record{Type: "done"})
	c.Close()

	if calls.Load() != 0 {
		t.Errorf("expected no deliveries after Close, got %d", calls.Load())
	}
}

func TestFailuresLoggedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var buf syncBuffer
	c := NewClient(server.URL, "run", logging.NewWithWriter(&buf, logging.LevelWarn))
	for i := 0; i < 5; i++ {
		c.Emit(debate.Record{Type: "status", Text: "x"})
	}
	c.Close()

	if n := strings.Count(buf.String(), "webhook rejected event"); n != 1 {
		t.Errorf("expected exactly one logged failure, got %d:\n%s", n, buf.String())
	}
}

func TestUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf syncBuffer
	c := NewClient(url, "run", logging.NewWithWriter(&buf, logging.LevelWarn))
	c.Emit(debate.Record{Type: "done"})
	c.Close()

	if !strings.Contains(buf.String(), "webhook delivery failed") {
		t.Errorf("expected delivery failure to be logged, got %q", buf.String())
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
