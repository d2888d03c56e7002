// internal/export/markdown_test.go
package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"arena/internal/debate"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(15 * time.Second)
		return t
	}
}

func TestExportDebate(t *testing.T) {
	r := NewRecorder("abc123", "Should pineapple go on pizza?", 0)
	r.now = fixedClock()
	r.export.StartedAt = time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC)

	r.Observe(debate.StageStarted{Name: "Opening"})
	r.Observe(debate.Message{Speaker: "Affirmative", Role: debate.RoleProponent, Text: "1. Sweet\n2. Salty"})
	r.Observe(debate.Message{Speaker: "Negative", Role: debate.RoleOpponent, Text: "It is wrong."})
	r.Observe(debate.StageStarted{Name: "Judge Summary"})
	r.Observe(debate.Message{Speaker: "Judge", Role: debate.RoleJudge,
		Text: "Affirmative Key Points:\n- Contrast\n\nNegative Key Points:\n- Tradition"})
	r.Observe(debate.Done{})

	result := ExportDebate(r.Export())

	for _, want := range []string{
		"# Should pineapple go on pizza?",
		"**Debate ID:** `abc123`",
		"**Started:** 2026-02-01 14:30:00",
		"**Rebuttal rounds:** 0",
		"**Participants:** Affirmative, Negative, Judge",
		"## Opening",
		"### [14:30:30] Affirmative (Affirmative)",
		"> 1. Sweet\n> 2. Salty\n",
		"## Judge Summary",
		"#### Affirmative Key Points\n\n- Contrast\n",
		"#### Negative Key Points\n\n- Tradition\n",
		"*Debate complete. Exported from Arena on 2026-02-01 14:31:30*",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestExportPartialDebate(t *testing.T) {
	r := NewRecorder("run-2", "X", 2)
	r.Observe(debate.StageStarted{Name: "Opening"})
	r.Observe(debate.Message{Speaker: "Affirmative", Role: debate.RoleProponent, Text: "point"})
	r.Observe(debate.StageStarted{Name: "Rebuttal Round 1"})
	r.Observe(debate.Status{Text: "Summary generated."})
	r.Fail(errors.New("Negative (opening): generation failed: timeout"))

	result := ExportDebate(r.Export())
	if !strings.Contains(result, "*Summary generated.*") {
		t.Error("Expected status line")
	}
	if !strings.Contains(result, "> **Debate stopped early:** Negative (opening): generation failed: timeout") {
		t.Error("Expected failure notice")
	}
	if !strings.Contains(result, "*Debate incomplete.") {
		t.Error("Expected incomplete footer")
	}
}

func TestExportUnstructuredVerdict(t *testing.T) {
	r := NewRecorder("id", "X", 0)
	r.Observe(debate.Message{Speaker: "Judge", Role: debate.RoleJudge, Text: "Both sides were persuasive."})

	result := ExportDebate(r.Export())
	if !strings.Contains(result, "> Both sides were persuasive.") {
		t.Errorf("Unstructured verdict should be quoted:\n%s", result)
	}
}

func TestExportCodeBlock(t *testing.T) {
	r := NewRecorder("id", "X", 0)
	r.Observe(debate.Message{Speaker: "Affirmative", Role: debate.RoleProponent, Text: "```\ncode\n```"})

	result := ExportDebate(r.Export())
	if strings.Contains(result, "> ```") {
		t.Error("Code blocks should not be quoted")
	}
}

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder("id", "X", 0)
	r.Observe(debate.Done{})
	snap := r.Export()
	r.Observe(debate.Done{})

	if len(snap.Events) != 1 {
		t.Errorf("Snapshot should not change after more events, got %d", len(snap.Events))
	}
}
