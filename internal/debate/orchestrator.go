// internal/debate/orchestrator.go
package debate

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"arena/internal/logging"
)

// Stage headings and status text carried by events
const (
	openingHeading = "Opening"
	rebuttalFormat = "Rebuttal Round %d"
	closingHeading = "Closing"
	judgeHeading   = "Judge Summary"

	summaryReady = "Summary generated."
)

// Orchestrator drives one debate through its fixed stage sequence
type Orchestrator struct {
	transcript *Transcript
	proponent  *Debater
	opponent   *Debater
	judge      *Judge
	summarizer *Summarizer

	runID       string
	logger      *logging.Logger
	turnTimeout time.Duration
	observer    func(Event)

	started atomic.Bool
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the run logger
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTurnTimeout bounds every generation and summary call. Zero disables it.
func WithTurnTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.turnTimeout = d }
}

// WithObserver registers a callback that sees every emitted event
func WithObserver(fn func(Event)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// WithRunID overrides the generated run ID
func WithRunID(id string) Option {
	return func(o *Orchestrator) { o.runID = id }
}

func New(t *Transcript, proponent, opponent *Debater, judge *Judge, summarizer *Summarizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		transcript: t,
		proponent:  proponent,
		opponent:   opponent,
		judge:      judge,
		summarizer: summarizer,
		runID:      uuid.NewString(),
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	// Agents without their own logger inherit the run logger
	for _, a := range []*Agent{&proponent.Agent, &opponent.Agent, &judge.Agent} {
		if a.logger == nil {
			a.SetLogger(o.logger.WithRun(o.runID))
		}
	}
	return o
}

// RunID identifies this debate in logs and wire records
func (o *Orchestrator) RunID() string { return o.runID }

// Transcript returns the debate history owned by the orchestrator
func (o *Orchestrator) Transcript() *Transcript { return o.transcript }

// Run returns the debate as a lazy event sequence. Each pull performs the
// work for the next event; stopping the range stops the debate. A failure
// is yielded as a final (nil, err) pair after every event produced so far.
// The sequence can be consumed once.
func (o *Orchestrator) Run(ctx context.Context, rounds int) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if rounds < 0 {
			yield(nil, &ConfigurationError{Key: "debate.rounds", Message: fmt.Sprintf("must be non-negative, got %d", rounds)})
			return
		}
		if o.started.Swap(true) {
			yield(nil, ErrAlreadyRun)
			return
		}

		r := &run{o: o, ctx: ctx, yield: yield, log: o.logger.WithRun(o.runID)}
		r.log.Info("debate started", "topic", o.transcript.Topic(), "rounds", rounds)
		start := time.Now()

		if !r.execute(rounds) {
			return
		}
		r.log.Info("debate finished", "duration_ms", time.Since(start).Milliseconds())
	}
}

// run holds the state of one pass through the stage sequence. Every step
// returns false once the consumer stops pulling or a call fails.
type run struct {
	o     *Orchestrator
	ctx   context.Context
	yield func(Event, error) bool
	log   *logging.Logger
}

func (r *run) execute(rounds int) bool {
	o := r.o

	if !r.emit(StageStarted{Name: openingHeading}) ||
		!r.turn(o.proponent, StageOpening, "") ||
		!r.turn(o.opponent, StageOpening, "") {
		return false
	}

	for i := 1; i <= rounds; i++ {
		if !r.emit(StageStarted{Name: fmt.Sprintf(rebuttalFormat, i)}) {
			return false
		}
		summary, ok := r.summarize(StageRebuttal)
		if !ok || !r.emit(Status{Text: summaryReady}) {
			return false
		}
		if !r.turn(o.proponent, StageRebuttal, summary) ||
			!r.turn(o.opponent, StageRebuttal, summary) {
			return false
		}
	}

	if !r.emit(StageStarted{Name: closingHeading}) {
		return false
	}
	closing, ok := r.summarize(StageClosing)
	if !ok ||
		!r.turn(o.proponent, StageClosing, closing) ||
		!r.turn(o.opponent, StageClosing, closing) {
		return false
	}

	if !r.emit(StageStarted{Name: judgeHeading}) || !r.verdict(closing) {
		return false
	}
	return r.emit(Done{})
}

func (r *run) emit(ev Event) bool {
	if r.o.observer != nil {
		r.o.observer(ev)
	}
	return r.yield(ev, nil)
}

func (r *run) fail(err error) bool {
	r.log.Error("debate failed", "error", err.Error())
	r.yield(nil, err)
	return false
}

func (r *run) callContext() (context.Context, context.CancelFunc) {
	if r.o.turnTimeout > 0 {
		return context.WithTimeout(r.ctx, r.o.turnTimeout)
	}
	return context.WithCancel(r.ctx)
}

func (r *run) turn(d *Debater, stage Stage, summary string) bool {
	ctx, cancel := r.callContext()
	defer cancel()

	start := time.Now()
	text, err := d.Act(ctx, r.o.transcript, stage, summary)
	if err != nil {
		return r.fail(err)
	}
	r.log.Info("turn complete",
		"speaker", d.Name,
		"stage", stage.String(),
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	r.o.transcript.Add(d.Name, d.Role, text)
	return r.emit(Message{Speaker: d.Name, Role: d.Role, Text: text})
}

func (r *run) summarize(before Stage) (string, bool) {
	ctx, cancel := r.callContext()
	defer cancel()

	start := time.Now()
	summary, err := r.o.summarizer.Summarize(ctx, r.o.transcript)
	if err != nil {
		return "", r.fail(err)
	}
	r.log.Debug("summary generated",
		"stage", before.String(),
		"entries", r.o.transcript.Len(),
		"chars", len(summary),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, true
}

// verdict asks the judge for its summary. The result is emitted but never
// added to the transcript.
func (r *run) verdict(summary string) bool {
	ctx, cancel := r.callContext()
	defer cancel()

	j := r.o.judge
	text, err := j.Act(ctx, r.o.transcript, summary)
	if err != nil {
		return r.fail(err)
	}
	r.log.Info("verdict delivered", "speaker", j.Name, "chars", len(text))
	return r.emit(Message{Speaker: j.Name, Role: j.Role, Text: text})
}
