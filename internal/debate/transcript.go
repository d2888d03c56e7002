// internal/debate/transcript.go
package debate

import (
	"fmt"
	"strings"
)

// Entry is one utterance in the debate history
type Entry struct {
	Speaker string
	Role    Role
	Text    string
}

// Transcript is the append-only record of a single debate
type Transcript struct {
	topic   string
	entries []Entry
}

func NewTranscript(topic string) *Transcript {
	return &Transcript{topic: topic}
}

func (t *Transcript) Topic() string { return t.topic }

func (t *Transcript) Len() int { return len(t.entries) }

// Add appends an entry. Entries are never reordered or removed.
func (t *Transcript) Add(speaker string, role Role, text string) {
	t.entries = append(t.entries, Entry{Speaker: speaker, Role: role, Text: text})
}

// Entries returns a copy of the history
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Render serializes the transcript for the summarizer
func (t *Transcript) Render() string {
	lines := []string{
		"Debate Topic: " + t.topic,
		"",
		"-- Debate History --",
	}
	if len(t.entries) == 0 {
		lines = append(lines, "No arguments yet.")
	}
	for _, e := range t.entries {
		lines = append(lines, fmt.Sprintf("[%s - %s]\n%s\n", e.Role, e.Speaker, e.Text))
	}
	lines = append(lines, "-- End --")
	return strings.Join(lines, "\n")
}
