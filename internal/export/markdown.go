// internal/export/markdown.go
package export

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"arena/internal/debate"
	"arena/internal/verdict"
)

// TimedEvent is an event with the time it was observed
type TimedEvent struct {
	Event debate.Event
	At    time.Time
}

// DebateExport contains the data needed to render a debate
type DebateExport struct {
	ID         string
	Topic      string
	Rounds     int
	StartedAt  time.Time
	FinishedAt time.Time
	Events     []TimedEvent
	Failure    error
}

// Recorder accumulates events of a run as they are emitted.
// Observe can be passed straight to debate.WithObserver.
type Recorder struct {
	mu     sync.Mutex
	export DebateExport
	now    func() time.Time
}

func NewRecorder(id, topic string, rounds int) *Recorder {
	r := &Recorder{now: time.Now}
	r.export = DebateExport{ID: id, Topic: topic, Rounds: rounds, StartedAt: r.now()}
	return r
}

// Observe records one event
func (r *Recorder) Observe(ev debate.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := r.now()
	r.export.Events = append(r.export.Events, TimedEvent{Event: ev, At: at})
	r.export.FinishedAt = at
}

// Fail records why the run stopped early
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.export.Failure = err
	r.export.FinishedAt = r.now()
}

// Export returns a snapshot of what has been recorded
func (r *Recorder) Export() *DebateExport {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := r.export
	snapshot.Events = append([]TimedEvent(nil), r.export.Events...)
	return &snapshot
}

// ExportDebate generates a formatted markdown string from a debate
func ExportDebate(d *DebateExport) string {
	var sb strings.Builder

	// Title header
	sb.WriteString("# ")
	sb.WriteString(d.Topic)
	sb.WriteString("\n\n")

	// Metadata section
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Debate ID:** `%s`\n\n", d.ID))
	sb.WriteString(fmt.Sprintf("**Started:** %s\n\n", d.StartedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("**Rebuttal rounds:** %d\n\n", d.Rounds))
	if participants := participants(d.Events); len(participants) > 0 {
		sb.WriteString("**Participants:** ")
		sb.WriteString(strings.Join(participants, ", "))
		sb.WriteString("\n\n")
	}
	sb.WriteString("---\n\n")

	completed := false
	for _, te := range d.Events {
		switch ev := te.Event.(type) {
		case debate.StageStarted:
			sb.WriteString(fmt.Sprintf("## %s\n\n", ev.Name))
		case debate.Status:
			sb.WriteString(fmt.Sprintf("*%s*\n\n", ev.Text))
		case debate.Message:
			writeMessage(&sb, ev, te.At)
		case debate.Done:
			completed = true
		}
	}

	if d.Failure != nil {
		sb.WriteString(fmt.Sprintf("> **Debate stopped early:** %s\n\n", d.Failure))
	}

	// Footer
	sb.WriteString("---\n\n")
	status := "Debate complete"
	if !completed {
		status = "Debate incomplete"
	}
	sb.WriteString(fmt.Sprintf("*%s. Exported from Arena on %s*\n", status, d.FinishedAt.Format("2006-01-02 15:04:05")))

	return sb.String()
}

func writeMessage(sb *strings.Builder, m debate.Message, at time.Time) {
	sb.WriteString(fmt.Sprintf("### [%s] %s (%s)\n\n", at.Format("15:04:05"), m.Speaker, m.Role.DisplayName()))

	content := strings.TrimSpace(m.Text)
	if m.Role == debate.RoleJudge {
		if v := verdict.Parse(content); v.Structured() {
			writeVerdict(sb, v)
			return
		}
	}

	if containsCodeBlock(content) {
		// Content already has code blocks, render as-is
		sb.WriteString(content)
		sb.WriteString("\n")
	} else {
		// Wrap in blockquote for visual distinction
		for _, line := range strings.Split(content, "\n") {
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

func writeVerdict(sb *strings.Builder, v verdict.Verdict) {
	for _, side := range []verdict.Side{verdict.SideAffirmative, verdict.SideNegative} {
		points := v.Points(side)
		if len(points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("#### %s Key Points\n\n", side))
		for _, p := range points {
			sb.WriteString("- ")
			sb.WriteString(p)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
}

// participants lists speakers in order of first appearance
func participants(events []TimedEvent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, te := range events {
		m, ok := te.Event.(debate.Message)
		if !ok || seen[m.Speaker] {
			continue
		}
		seen[m.Speaker] = true
		out = append(out, m.Speaker)
	}
	return out
}

// containsCodeBlock checks if content already has markdown code blocks
func containsCodeBlock(content string) bool {
	return strings.Contains(content, "```")
}
