// internal/ui/dashboard.go
package ui

import (
	"fmt"
	"strings"

	"arena/internal/debate"
)

const (
	// TimelineVisible is how many timeline entries are shown
	TimelineVisible = 12
	timelineCap     = 60
	historyCap      = 500
)

// AgentStatus is what an agent panel displays
type AgentStatus int

const (
	StatusIdle AgentStatus = iota
	StatusListening
	StatusSpeaking
	StatusDone
)

func (s AgentStatus) String() string {
	switch s {
	case StatusListening:
		return "Listening"
	case StatusSpeaking:
		return "Speaking"
	case StatusDone:
		return "Done"
	default:
		return "Idle"
	}
}

// Dashboard is the event-driven state behind the live view
type Dashboard struct {
	Topic    string
	Statuses map[debate.Role]AgentStatus
	History  []debate.Message
	System   string
	Failed   bool
	Finished bool

	timeline []string // newest first
}

func NewDashboard(topic string) *Dashboard {
	d := &Dashboard{Topic: topic}
	d.Reset()
	return d
}

// Reset returns the dashboard to its pre-run state
func (d *Dashboard) Reset() {
	d.Statuses = map[debate.Role]AgentStatus{
		debate.RoleProponent: StatusIdle,
		debate.RoleOpponent:  StatusIdle,
		debate.RoleJudge:     StatusIdle,
	}
	d.History = nil
	d.timeline = nil
	d.Failed = false
	d.Finished = false
	d.System = "Initializing…"
	d.pushTimeline(d.System)
}

// Apply updates the dashboard for one event
func (d *Dashboard) Apply(ev debate.Event) {
	switch e := ev.(type) {
	case debate.StageStarted:
		d.System = "Stage: " + e.Name
		d.pushTimeline(d.System)
		d.Statuses[debate.RoleProponent] = StatusListening
		d.Statuses[debate.RoleOpponent] = StatusListening
		d.Statuses[debate.RoleJudge] = StatusIdle

	case debate.Status:
		d.System = e.Text
		d.pushTimeline(e.Text)

	case debate.Message:
		d.History = append(d.History, e)
		if len(d.History) > historyCap {
			d.History = d.History[len(d.History)-historyCap:]
		}
		switch e.Role {
		case debate.RoleProponent:
			d.Statuses[debate.RoleProponent] = StatusSpeaking
			d.Statuses[debate.RoleOpponent] = StatusListening
		case debate.RoleOpponent:
			d.Statuses[debate.RoleOpponent] = StatusSpeaking
			d.Statuses[debate.RoleProponent] = StatusListening
		case debate.RoleJudge:
			d.Statuses[debate.RoleJudge] = StatusSpeaking
		}

	case debate.Done:
		d.Finished = true
		d.System = "Debate completed ✅"
		d.pushTimeline(d.System)
		for role := range d.Statuses {
			d.Statuses[role] = StatusDone
		}
	}
}

// Fail records a run that stopped early
func (d *Dashboard) Fail(err error) {
	d.Failed = true
	d.Finished = true
	d.System = fmt.Sprintf("Error: %v", err)
	d.pushTimeline(d.System)
}

func (d *Dashboard) pushTimeline(entry string) {
	d.timeline = append([]string{entry}, d.timeline...)
	if len(d.timeline) > timelineCap {
		d.timeline = d.timeline[:timelineCap]
	}
}

// Timeline returns the visible entries, newest first
func (d *Dashboard) Timeline() []string {
	if len(d.timeline) > TimelineVisible {
		return d.timeline[:TimelineVisible]
	}
	return d.timeline
}

// Messages returns the messages spoken by role, oldest first
func (d *Dashboard) Messages(role debate.Role) []debate.Message {
	var out []debate.Message
	for _, m := range d.History {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// LastJudge returns the most recent judge message, if any
func (d *Dashboard) LastJudge() (debate.Message, bool) {
	for i := len(d.History) - 1; i >= 0; i-- {
		if d.History[i].Role == debate.RoleJudge {
			return d.History[i], true
		}
	}
	return debate.Message{}, false
}

// muted reports whether a timeline entry is rendered dimmed
func muted(entry string) bool {
	lower := strings.ToLower(entry)
	return strings.Contains(lower, "summary") || strings.Contains(lower, "generated")
}
