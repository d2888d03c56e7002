// internal/debate/summarizer.go
package debate

import (
	"context"
	"strings"

	"arena/internal/models"
)

// Summarizer condenses the transcript into a neutral digest used as
// running context in place of the full history
type Summarizer struct {
	Model string

	gen      models.Generator
	settings *Settings
}

func NewSummarizer(model string, gen models.Generator, settings *Settings) *Summarizer {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Summarizer{Model: model, gen: gen, settings: settings}
}

func (s *Summarizer) Summarize(ctx context.Context, t *Transcript) (string, error) {
	prompt, err := render("summary_template", s.settings.SummaryTemplate, summaryData{History: t.Render()})
	if err != nil {
		return "", err
	}

	var messages []models.Message
	if strings.TrimSpace(s.settings.SummarizerInstruction) != "" {
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: s.settings.SummarizerInstruction})
	}
	messages = append(messages, models.Message{Role: models.RoleUser, Content: prompt})

	text, err := s.gen.Generate(ctx, s.Model, messages, s.settings.SummaryBudget)
	if err != nil {
		return "", &GenerationError{Speaker: "Summarizer", Stage: "summary", Err: err}
	}
	return text, nil
}
