// internal/debate/agent.go
package debate

import (
	"context"
	"fmt"
	"strings"

	"arena/internal/evidence"
	"arena/internal/logging"
	"arena/internal/models"
)

// Agent binds a role to a generation backend
type Agent struct {
	Name  string
	Role  Role
	Model string

	gen      models.Generator
	settings *Settings
	logger   *logging.Logger
}

func newAgent(name string, role Role, model string, gen models.Generator, settings *Settings) Agent {
	if name == "" {
		name = role.DisplayName()
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	return Agent{Name: name, Role: role, Model: model, gen: gen, settings: settings}
}

// SetLogger attaches a logger; a nil logger discards output
func (a *Agent) SetLogger(l *logging.Logger) {
	a.logger = l
}

// Generate sends one turn to the backend: the role instruction as a system
// message when it is non-empty, then retrieved+prompt as the user message.
func (a *Agent) Generate(ctx context.Context, topic, prompt string, stage Stage, retrieved string) (string, error) {
	budget, err := a.settings.Budgets.For(stage)
	if err != nil {
		return "", err
	}

	messages, err := a.messages(topic, retrieved+prompt)
	if err != nil {
		return "", err
	}

	text, err := a.gen.Generate(ctx, a.Model, messages, budget)
	if err != nil {
		return "", &GenerationError{Speaker: a.Name, Stage: stage.String(), Err: err}
	}
	return text, nil
}

func (a *Agent) messages(topic, user string) ([]models.Message, error) {
	tpl, err := a.settings.Instructions.For(a.Role)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if strings.TrimSpace(tpl) != "" {
		system, err := render("instructions."+a.Role.String(), tpl, promptData{Topic: topic})
		if err != nil {
			return nil, err
		}
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: system})
	}
	return append(messages, models.Message{Role: models.RoleUser, Content: user}), nil
}

// Debater argues one side and may consult a retriever
type Debater struct {
	Agent
	retriever evidence.Retriever
}

// NewDebater creates a debater for the proponent or opponent role.
// A nil retriever disables evidence gathering.
func NewDebater(name string, role Role, model string, gen models.Generator, settings *Settings, retriever evidence.Retriever) (*Debater, error) {
	if !role.IsDebater() {
		return nil, &ConfigurationError{Key: "role", Message: fmt.Sprintf("%s cannot debate", role)}
	}
	return &Debater{
		Agent:     newAgent(name, role, model, gen, settings),
		retriever: retriever,
	}, nil
}

// RetrievalQuery builds the query sent to the retriever for a turn
func (d *Debater) RetrievalQuery(topic string, stage Stage, summary string) string {
	query := fmt.Sprintf("Evidence relevant to: %s. Role=%s. Stage=%s.", topic, d.Role, stage)
	if summary != "" {
		limit := d.settings.ExcerptLimit
		if limit <= 0 {
			limit = DefaultExcerptLimit
		}
		query += " Debate summary (excerpt): " + truncateRunes(summary, limit)
	}
	return query
}

// Act produces the debater's utterance for a stage. Retrieval problems
// degrade to sentinel text; only generation failures are returned.
func (d *Debater) Act(ctx context.Context, t *Transcript, stage Stage, summary string) (string, error) {
	tpl, err := d.settings.Prompts.For(stage)
	if err != nil {
		return "", err
	}

	var block string
	if stage.RetrievalEligible() {
		var rerr error
		block, rerr = evidence.Gather(ctx, d.retriever, d.RetrievalQuery(t.Topic(), stage, summary), d.maxEvidence())
		if rerr != nil {
			d.logger.Warn("retrieval degraded", "speaker", d.Name, "stage", stage.String(), "error", rerr.Error())
		}
	}

	prompt, err := render("stages."+stage.String(), tpl, promptData{
		Topic:    t.Topic(),
		Summary:  summary,
		Evidence: block,
	})
	if err != nil {
		return "", err
	}
	return d.Generate(ctx, t.Topic(), prompt, stage, "")
}

func (d *Debater) maxEvidence() int {
	if d.settings.MaxEvidence > 0 {
		return d.settings.MaxEvidence
	}
	return evidence.DefaultMaxPassages
}

// Judge delivers the closing verdict. It never retrieves and never joins
// the transcript.
type Judge struct {
	Agent
}

func NewJudge(name, model string, gen models.Generator, settings *Settings) *Judge {
	return &Judge{Agent: newAgent(name, RoleJudge, model, gen, settings)}
}

// Act fills the judge prompt with the final summary
func (j *Judge) Act(ctx context.Context, t *Transcript, summary string) (string, error) {
	tpl, err := j.settings.Prompts.For(StageJudge)
	if err != nil {
		return "", err
	}
	prompt, err := render("stages.judge", tpl, promptData{Summary: summary})
	if err != nil {
		return "", err
	}
	return j.Generate(ctx, t.Topic(), prompt, StageJudge, "")
}

// truncateRunes keeps the first n characters of s
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
