// internal/debate/mock_test.go
package debate

import (
	"context"
	"sync"

	"arena/internal/evidence"
	"arena/internal/models"
)

type generateCall struct {
	Model     string
	Messages  []models.Message
	MaxTokens int
}

func (c generateCall) system() string {
	for _, m := range c.Messages {
		if m.Role == models.RoleSystem {
			return m.Content
		}
	}
	return ""
}

func (c generateCall) user() string {
	for _, m := range c.Messages {
		if m.Role == models.RoleUser {
			return m.Content
		}
	}
	return ""
}

// MockGenerator records every call and answers with generateFunc
type MockGenerator struct {
	mu           sync.Mutex
	calls        []generateCall
	generateFunc func(ctx context.Context, call generateCall) (string, error)
}

func (m *MockGenerator) Generate(ctx context.Context, model string, messages []models.Message, maxTokens int) (string, error) {
	call := generateCall{Model: model, Messages: messages, MaxTokens: maxTokens}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(ctx, call)
	}
	return "Mock response", nil
}

func (m *MockGenerator) Calls() []generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsWithSystem counts calls whose system instruction equals system
func (m *MockGenerator) CallsWithSystem(system string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.system() == system {
			n++
		}
	}
	return n
}

// echo replies "<system>:<user>", which with stubSettings is "<role>:<stage>"
func echo(ctx context.Context, call generateCall) (string, error) {
	return call.system() + ":" + call.user(), nil
}

// stubSettings reduces every instruction to its role key and every prompt
// to its stage key
func stubSettings() *Settings {
	s := DefaultSettings()
	s.Instructions = RoleInstructions{
		Proponent: "AffirmativeAgent",
		Opponent:  "NegativeAgent",
		Judge:     "JudgeAgent",
	}
	s.Prompts = StagePrompts{
		Opening:  "opening",
		Rebuttal: "rebuttal",
		Closing:  "closing",
		Judge:    "judge",
	}
	s.SummarizerInstruction = "Summarizer"
	s.SummaryTemplate = "summary"
	return s
}

// MockRetriever records queries and returns fixed results
type MockRetriever struct {
	mu       sync.Mutex
	queries  []string
	passages []evidence.Passage
	err      error
}

func (r *MockRetriever) Query(ctx context.Context, text string) ([]evidence.Passage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, text)
	if r.err != nil {
		return nil, &evidence.RetrievalError{Query: text, Err: r.err}
	}
	return r.passages, nil
}

func (r *MockRetriever) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

type fixture struct {
	gen        *MockGenerator
	transcript *Transcript
	proponent  *Debater
	opponent   *Debater
	judge      *Judge
	summarizer *Summarizer
}

func newFixture(gen *MockGenerator, settings *Settings, retriever evidence.Retriever) *fixture {
	pro, err := NewDebater("", RoleProponent, "test-model", gen, settings, retriever)
	if err != nil {
		panic(err)
	}
	opp, err := NewDebater("", RoleOpponent, "test-model", gen, settings, retriever)
	if err != nil {
		panic(err)
	}
	return &fixture{
		gen:        gen,
		transcript: NewTranscript("X"),
		proponent:  pro,
		opponent:   opp,
		judge:      NewJudge("", "judge-model", gen, settings),
		summarizer: NewSummarizer("summary-model", gen, settings),
	}
}

func (f *fixture) orchestrator(opts ...Option) *Orchestrator {
	return New(f.transcript, f.proponent, f.opponent, f.judge, f.summarizer, opts...)
}
