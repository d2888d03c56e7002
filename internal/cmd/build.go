// internal/cmd/build.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"arena/internal/config"
	"arena/internal/debate"
	"arena/internal/evidence"
	"arena/internal/knowledge"
	"arena/internal/logging"
	"arena/internal/models"
	"arena/internal/webhook"
)

// env is the loaded configuration plus the process logger
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

// loadEnv loads configuration. quietStderr discards logs that would
// otherwise go to stderr, for full-screen commands.
func loadEnv(quietStderr bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newEnv(cfg, quietStderr)
}

func newEnv(cfg *config.Config, quietStderr bool) (*env, error) {
	if cfg.Logging.File == "" && quietStderr {
		return &env{cfg: cfg, logger: logging.NewWithWriter(io.Discard, cfg.Logging.Level)}, nil
	}
	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) Close() {
	_ = e.logger.Close()
}

// registry routes model identifiers to the configured backends
func (e *env) registry() *models.Registry {
	retry := e.cfg.Retry.RetryPolicy()
	reg := models.NewRegistry(e.cfg.Models.Backend)
	reg.Register(config.BackendOllama, models.NewOllama(e.cfg.Ollama.Endpoint, retry))
	reg.Register(config.BackendOpenAI, models.NewOpenAI(e.cfg.OpenAI.BaseURL, e.cfg.OpenAI.APIKey, retry))
	return reg
}

func (e *env) embedder() *knowledge.OllamaEmbedder {
	return knowledge.NewOllamaEmbedder(e.cfg.Ollama.Endpoint, e.cfg.Retrieval.EmbeddingModel, e.cfg.Retry.RetryPolicy())
}

// retriever indexes the knowledge base when retrieval is enabled. A nil
// retriever means debaters run without evidence.
func (e *env) retriever(ctx context.Context, enabled bool) (evidence.Retriever, error) {
	if !enabled {
		return nil, nil
	}
	r, err := knowledge.Index(ctx, e.cfg.Retrieval.IndexOptions(), e.embedder(), e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to index knowledge base: %w", err)
	}
	if r == nil {
		e.logger.Warn("knowledge base is empty, debating without evidence",
			"kb_directory", e.cfg.Retrieval.KBDirectory)
	}
	return r, nil
}

// session is one assembled debate run
type session struct {
	orch   *debate.Orchestrator
	rounds int
	topic  string
	hook   *webhook.Client
}

// Close waits for pending webhook deliveries
func (s *session) Close() {
	if s.hook != nil {
		s.hook.Close()
	}
}

// newSession wires agents, retrieval and observers into an orchestrator
func (e *env) newSession(ctx context.Context, topic string, rounds int, enableRAG bool, observers ...func(debate.Event)) (*session, error) {
	pack, err := config.LoadPromptPack(e.cfg.Prompts.File)
	if err != nil {
		return nil, err
	}
	settings, err := e.cfg.Settings(pack)
	if err != nil {
		return nil, err
	}

	retriever, err := e.retriever(ctx, enableRAG)
	if err != nil {
		return nil, err
	}

	reg := e.registry()
	m := e.cfg.Models
	proponent, err := debate.NewDebater("", debate.RoleProponent, m.Default, reg, settings, retriever)
	if err != nil {
		return nil, err
	}
	opponent, err := debate.NewDebater("", debate.RoleOpponent, m.Default, reg, settings, retriever)
	if err != nil {
		return nil, err
	}
	judge := debate.NewJudge("", m.Judge, reg, settings)
	summarizer := debate.NewSummarizer(m.Summary, reg, settings)

	s := &session{rounds: rounds, topic: topic}
	runID := uuid.NewString()
	if e.cfg.Webhook.URL != "" {
		s.hook = webhook.NewClient(e.cfg.Webhook.URL, runID, e.logger.WithRun(runID))
		observers = append(observers, s.hook.Observe)
	}

	opts := []debate.Option{
		debate.WithRunID(runID),
		debate.WithLogger(e.logger),
		debate.WithTurnTimeout(e.cfg.Timeouts.TurnTimeout()),
	}
	if len(observers) > 0 {
		opts = append(opts, debate.WithObserver(fanOut(observers)))
	}

	s.orch = debate.New(debate.NewTranscript(topic), proponent, opponent, judge, summarizer, opts...)
	return s, nil
}

func fanOut(observers []func(debate.Event)) func(debate.Event) {
	return func(ev debate.Event) {
		for _, observe := range observers {
			observe(ev)
		}
	}
}
