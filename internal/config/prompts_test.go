// internal/config/prompts_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"arena/internal/debate"
)

func TestLoadPromptPack(t *testing.T) {
	t.Setenv("ARENA_TEST_TEAM", "GREEN")
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := `
instructions:
  affirmative: "You argue for the $ARENA_TEST_TEAM team: '{{.Topic}}'."
stages:
  closing: "{{.Evidence}}Wrap up using:\n{{.Summary}}"
summary_template: "Digest:\n{{.History}}"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	pack, err := LoadPromptPack(path)
	if err != nil {
		t.Fatalf("LoadPromptPack() failed: %v", err)
	}

	s, err := Default().Settings(pack)
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if s.Instructions.Proponent != "You argue for the GREEN team: '{{.Topic}}'." {
		t.Errorf("Env not expanded or override missing: %q", s.Instructions.Proponent)
	}
	if s.Prompts.Closing != "{{.Evidence}}Wrap up using:\n{{.Summary}}" {
		t.Errorf("Unexpected closing prompt %q", s.Prompts.Closing)
	}
	if s.SummaryTemplate != "Digest:\n{{.History}}" {
		t.Errorf("Unexpected summary template %q", s.SummaryTemplate)
	}

	stock := debate.DefaultSettings()
	if s.Instructions.Opponent != stock.Instructions.Opponent || s.Prompts.Opening != stock.Prompts.Opening {
		t.Error("Fields absent from the pack should keep stock text")
	}
}

func TestLoadPromptPackEmptyPath(t *testing.T) {
	pack, err := LoadPromptPack("")
	if pack != nil || err != nil {
		t.Errorf("Expected nil pack, got %v %v", pack, err)
	}
}

func TestLoadPromptPackMissing(t *testing.T) {
	if _, err := LoadPromptPack(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPromptPackBrokenTemplate(t *testing.T) {
	pack := &PromptPack{}
	pack.Stages.Judge = "{{.Summary"

	_, err := Default().Settings(pack)
	if !errors.Is(err, debate.ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}
