// internal/config/prompts.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"arena/internal/debate"
)

// PromptPack overrides any of the stock instructions and templates.
// Empty fields keep the stock text.
type PromptPack struct {
	Instructions struct {
		Affirmative string `yaml:"affirmative"`
		Negative    string `yaml:"negative"`
		Judge       string `yaml:"judge"`
		Summarizer  string `yaml:"summarizer"`
	} `yaml:"instructions"`
	Stages struct {
		Opening  string `yaml:"opening"`
		Rebuttal string `yaml:"rebuttal"`
		Closing  string `yaml:"closing"`
		Judge    string `yaml:"judge"`
	} `yaml:"stages"`
	SummaryTemplate string `yaml:"summary_template"`
}

// LoadPromptPack reads a prompt pack. An empty path yields nil.
func LoadPromptPack(path string) (*PromptPack, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt pack: %w", err)
	}

	// Expand environment variables in the pack
	expanded := os.ExpandEnv(string(data))

	var pack PromptPack
	if err := yaml.Unmarshal([]byte(expanded), &pack); err != nil {
		return nil, fmt.Errorf("parse prompt pack %s: %w", path, err)
	}
	return &pack, nil
}

// Apply copies the non-empty overrides into s. A nil pack is a no-op.
func (p *PromptPack) Apply(s *debate.Settings) {
	if p == nil {
		return
	}
	override(&s.Instructions.Proponent, p.Instructions.Affirmative)
	override(&s.Instructions.Opponent, p.Instructions.Negative)
	override(&s.Instructions.Judge, p.Instructions.Judge)
	override(&s.SummarizerInstruction, p.Instructions.Summarizer)
	override(&s.Prompts.Opening, p.Stages.Opening)
	override(&s.Prompts.Rebuttal, p.Stages.Rebuttal)
	override(&s.Prompts.Closing, p.Stages.Closing)
	override(&s.Prompts.Judge, p.Stages.Judge)
	override(&s.SummaryTemplate, p.SummaryTemplate)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
