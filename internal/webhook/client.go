// internal/webhook/client.go
// Fire-and-forget delivery of debate event records to an HTTP endpoint
package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"arena/internal/debate"
	"arena/internal/logging"
)

// DefaultTimeout bounds a single delivery
const DefaultTimeout = 2 * time.Second

// Payload is the body POSTed for every event. Deliveries may arrive out of
// order; Seq numbers the events of a run from 1 in emission order.
type Payload struct {
	RunID     string        `json:"run_id"`
	Seq       uint64        `json:"seq"`
	Timestamp int64         `json:"timestamp"`
	Event     debate.Record `json:"event"`
}

// Client posts event records to a webhook endpoint
type Client struct {
	endpoint   string
	runID      string
	httpClient *http.Client
	logger     *logging.Logger

	wg        sync.WaitGroup
	mu        sync.Mutex
	errLogged bool // Only log delivery errors once
	closed    bool
	seq       uint64
}

// NewClient creates a client for endpoint tagging every payload with runID
func NewClient(endpoint, runID string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{
		endpoint: endpoint,
		runID:    runID,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

// Observe sends ev asynchronously. It has the shape debate.WithObserver expects.
func (c *Client) Observe(ev debate.Event) {
	c.Emit(debate.RecordOf(ev))
}

// Emit sends a record asynchronously (fire and forget)
func (c *Client) Emit(rec debate.Record) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	payload := Payload{RunID: c.runID, Seq: seq, Timestamp: time.Now().Unix(), Event: rec}
	go func() {
		defer c.wg.Done()
		c.send(payload)
	}()
}

// Close waits for in-flight deliveries. Later emits are dropped.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Client) send(p Payload) {
	body, err := json.Marshal(p)
	if err != nil {
		c.logOnce("failed to marshal event", err)
		return
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		c.logOnce("webhook delivery failed", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logOnce("webhook rejected event", &statusError{resp.StatusCode})
	}
}

func (c *Client) logOnce(msg string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errLogged {
		return
	}
	c.errLogged = true
	c.logger.Warn(msg, "endpoint", c.endpoint, "error", err.Error())
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "status " + http.StatusText(e.code)
}
