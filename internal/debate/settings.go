// internal/debate/settings.go
package debate

import (
	"fmt"
	"strings"
	"text/template"
)

// Defaults for the evidence and excerpt caps
const (
	DefaultMaxEvidence  = 3
	DefaultExcerptLimit = 250
)

// Settings is the prompt and budget configuration shared by every agent
// in one debate. It is built once and passed in at construction.
type Settings struct {
	Instructions RoleInstructions
	Prompts      StagePrompts
	Budgets      StageBudgets

	SummarizerInstruction string
	SummaryTemplate       string // fields: .History
	SummaryBudget         int

	MaxEvidence  int // passages per evidence block
	ExcerptLimit int // characters of summary quoted in a retrieval query
}

// RoleInstructions holds the system instruction per role. Fields: .Topic
type RoleInstructions struct {
	Proponent string
	Opponent  string
	Judge     string
}

// For returns the instruction template for r
func (ri RoleInstructions) For(r Role) (string, error) {
	switch r {
	case RoleProponent:
		return ri.Proponent, nil
	case RoleOpponent:
		return ri.Opponent, nil
	case RoleJudge:
		return ri.Judge, nil
	}
	return "", &ConfigurationError{Key: "instructions." + r.String(), Message: "no instruction for role"}
}

// StagePrompts holds the user prompt template per stage.
// Fields: .Topic, .Summary, .Evidence
type StagePrompts struct {
	Opening  string
	Rebuttal string
	Closing  string
	Judge    string
}

// For returns the prompt template for s
func (sp StagePrompts) For(s Stage) (string, error) {
	switch s {
	case StageOpening:
		return sp.Opening, nil
	case StageRebuttal:
		return sp.Rebuttal, nil
	case StageClosing:
		return sp.Closing, nil
	case StageJudge:
		return sp.Judge, nil
	}
	return "", &ConfigurationError{Key: "stages." + s.String(), Message: "no prompt for stage"}
}

// StageBudgets holds the output token cap per stage. Zero means unbounded.
type StageBudgets struct {
	Opening  int
	Rebuttal int
	Closing  int
	Judge    int
}

// For returns the token budget for s
func (sb StageBudgets) For(s Stage) (int, error) {
	switch s {
	case StageOpening:
		return sb.Opening, nil
	case StageRebuttal:
		return sb.Rebuttal, nil
	case StageClosing:
		return sb.Closing, nil
	case StageJudge:
		return sb.Judge, nil
	}
	return 0, &ConfigurationError{Key: "budgets." + s.String(), Message: "no token budget for stage"}
}

// DefaultSettings returns the stock prompts and budgets
func DefaultSettings() *Settings {
	return &Settings{
		Instructions: RoleInstructions{
			Proponent: "You are an AI debater on the AFFIRMATIVE team arguing FOR the motion: '{{.Topic}}'.",
			Opponent:  "You are an AI debater on the NEGATIVE team arguing AGAINST the motion: '{{.Topic}}'.",
			Judge: "You are an AI judge observing the debate on: '{{.Topic}}'. " +
				"Provide a brief, impartial summary of arguments from each side based only on the provided summary. Do not declare a winner.",
		},
		Prompts: StagePrompts{
			Opening: "{{.Evidence}}" +
				"Give your opening statement for the debate topic:\n" +
				"'{{.Topic}}'.\n\n" +
				"Respond with 3–4 numbered, concise, evidence-based points.",
			Rebuttal: "{{.Evidence}}" +
				"Debate summary so far:\n{{.Summary}}\n\n" +
				"Provide a rebuttal addressing the strongest opposing arguments.\n" +
				"Respond with 2–3 numbered points.",
			Closing: "{{.Evidence}}" +
				"Debate summary so far:\n{{.Summary}}\n\n" +
				"Provide a closing statement reinforcing your key arguments.\n" +
				"Respond with 2–3 numbered points.",
			Judge: "Debate summary:\n{{.Summary}}\n\n" +
				"Provide an impartial summary with the following format:\n\n" +
				"Affirmative Key Points:\n- ...\n\n" +
				"Negative Key Points:\n- ...",
		},
		Budgets: StageBudgets{
			Opening:  280,
			Rebuttal: 240,
			Closing:  220,
			Judge:    200,
		},
		SummarizerInstruction: "You are a neutral summarization assistant. " +
			"Summarize the debate history impartially, capturing key points from both sides.",
		SummaryTemplate: "Please provide a concise, neutral summary of the following debate history. " +
			"Include key arguments and rebuttals from both teams:\n\n{{.History}}\n\n" +
			"Keep it short.",
		SummaryBudget: 120,
		MaxEvidence:   DefaultMaxEvidence,
		ExcerptLimit:  DefaultExcerptLimit,
	}
}

// Validate parses every template so a broken pack fails before the debate starts
func (s *Settings) Validate() error {
	templates := map[string]string{
		"instructions.affirmative": s.Instructions.Proponent,
		"instructions.negative":    s.Instructions.Opponent,
		"instructions.judge":       s.Instructions.Judge,
		"stages.opening":           s.Prompts.Opening,
		"stages.rebuttal":          s.Prompts.Rebuttal,
		"stages.closing":           s.Prompts.Closing,
		"stages.judge":             s.Prompts.Judge,
		"summary_template":         s.SummaryTemplate,
	}
	for key, text := range templates {
		if _, err := template.New(key).Parse(text); err != nil {
			return &ConfigurationError{Key: key, Message: err.Error()}
		}
	}
	if strings.TrimSpace(s.SummaryTemplate) == "" {
		return &ConfigurationError{Key: "summary_template", Message: "must not be empty"}
	}
	return nil
}

// promptData is what stage prompts and instructions are executed with
type promptData struct {
	Topic    string
	Summary  string
	Evidence string
}

type summaryData struct {
	History string
}

func render(key, text string, data any) (string, error) {
	tmpl, err := template.New(key).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", &ConfigurationError{Key: key, Message: err.Error()}
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &ConfigurationError{Key: key, Message: fmt.Sprintf("execute: %v", err)}
	}
	return sb.String(), nil
}
