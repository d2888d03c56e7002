// internal/debate/event.go
package debate

// Event is one step of debate progress. The set is closed: StageStarted,
// Status, Message and Done are the only implementations.
type Event interface {
	Kind() string
	event()
}

// StageStarted marks the beginning of a stage
type StageStarted struct {
	Name string
}

// Status is an informational progress note
type Status struct {
	Text string
}

// Message is one agent utterance
type Message struct {
	Speaker string
	Role    Role
	Text    string
}

// Done ends a successful run
type Done struct{}

func (StageStarted) Kind() string { return "stage" }
func (Status) Kind() string       { return "status" }
func (Message) Kind() string      { return "msg" }
func (Done) Kind() string         { return "done" }

func (StageStarted) event() {}
func (Status) event()       {}
func (Message) event()      {}
func (Done) event()         {}

// Record is the JSON wire shape of an event
type Record struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text,omitempty"`
	Agent string `json:"agent,omitempty"`
	Role  string `json:"role,omitempty"`
}

// RecordOf converts an event to its wire record
func RecordOf(ev Event) Record {
	switch e := ev.(type) {
	case StageStarted:
		return Record{Type: e.Kind(), Name: e.Name}
	case Status:
		return Record{Type: e.Kind(), Text: e.Text}
	case Message:
		return Record{Type: e.Kind(), Agent: e.Speaker, Role: e.Role.String(), Text: e.Text}
	case Done:
		return Record{Type: e.Kind()}
	}
	return Record{Type: ev.Kind()}
}

// FailureRecord is the wire signal for a run that stopped early
func FailureRecord(err error) Record {
	return Record{Type: "error", Text: err.Error()}
}
