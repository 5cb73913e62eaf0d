package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/tonefield/composer/internal/logger"
)

const (
	defaultMaxRetries   = 2
	defaultRetryBackoff = 500 * time.Millisecond
	defaultStageTimeout = 60 * time.Second
)

// Config controls retry and timeout behavior of the engine.
type Config struct {
	// MaxRetries is the number of retries per stage beyond the first
	// attempt. Only transient failures are retried.
	MaxRetries int
	// RetryBackoff is the wait before the first retry; it doubles on each
	// subsequent attempt.
	RetryBackoff time.Duration
	// StageTimeout bounds each attempt of a stage. A timed-out attempt is
	// classified transient. Zero disables the bound.
	StageTimeout time.Duration
	// OnStage, when set, is called after every finished stage with its
	// total duration across attempts and its final error (nil on success).
	OnStage func(stage string, duration time.Duration, err error)
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   defaultMaxRetries,
		RetryBackoff: defaultRetryBackoff,
		StageTimeout: defaultStageTimeout,
	}
}

// Engine executes a fixed linear sequence of stages over an accumulating
// state. There is no branching and no fan-out: one entry, one terminal.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run validates the stage sequence against the initial state, then executes
// the stages in order, merging each partial update into the running state.
// On any failure the whole run aborts: the returned state is zero and the
// error is a *StageError (or a *MissingInputError from pre-flight).
func (e *Engine) Run(ctx context.Context, initial State, stages []Stage) (State, error) {
	if err := Preflight(initial, stages); err != nil {
		logger.Warn("pipeline rejected at pre-flight", logger.Fields{"error": err.Error()})
		return State{}, err
	}

	state := initial.Clone()
	for _, stage := range stages {
		start := time.Now()
		update, err := e.runStage(ctx, state, stage)
		if err == nil {
			err = merge(&state, stage, update)
		}
		if e.cfg.OnStage != nil {
			e.cfg.OnStage(stage.Name, time.Since(start), err)
		}
		if err != nil {
			logger.Error("pipeline stage failed", err, logger.Fields{
				"stage":       stage.Name,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			return State{}, &StageError{Stage: stage.Name, State: state.Snapshot(), Err: err}
		}
		logger.Info("pipeline stage completed", logger.Fields{
			"stage":       stage.Name,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
	return state, nil
}

// Preflight checks that every key any stage will read is either present in
// the initial state or produced by an earlier stage in the sequence. This is
// what turns an undeclared dependency into a clean rejection instead of a
// failure deep inside a stage after an external call has been issued.
func Preflight(initial State, stages []Stage) error {
	available := make(map[Key]bool, initial.Len())
	for _, k := range initial.Keys() {
		available[k] = true
	}
	for _, stage := range stages {
		for _, read := range stage.Reads {
			if !available[read] {
				return &MissingInputError{Stage: stage.Name, Key: read}
			}
		}
		for _, write := range stage.Writes {
			available[write] = true
		}
	}
	return nil
}

// runStage executes one stage with the configured timeout and retry policy.
func (e *Engine) runStage(ctx context.Context, state State, stage Stage) (Update, error) {
	view := View{
		stage: stage.Name,
		reads: keySet(stage.Reads),
		state: state,
	}

	backoff := e.cfg.RetryBackoff
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(nil)
		if e.cfg.StageTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, e.cfg.StageTimeout)
		}
		update, err := stage.Run(attemptCtx, view)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return update, nil
		}

		// A per-attempt timeout counts as transient as long as the run
		// itself was not cancelled.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = &TransientExternalError{Err: err}
		}

		var transient *TransientExternalError
		if !errors.As(err, &transient) || attempt >= e.cfg.MaxRetries {
			return nil, err
		}

		logger.Warn("retrying stage after transient failure", logger.Fields{
			"stage":      stage.Name,
			"attempt":    attempt + 1,
			"backoff_ms": backoff.Milliseconds(),
			"error":      err.Error(),
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// merge applies a stage's partial update, rejecting keys outside its
// declared writes so no stage can clobber state it does not own.
func merge(state *State, stage Stage, update Update) error {
	writes := keySet(stage.Writes)
	for key, value := range update {
		if !writes[key] {
			return &UndeclaredDependencyError{Stage: stage.Name, Key: key, Write: true}
		}
		state.Set(key, value)
	}
	return nil
}

func keySet(keys []Key) map[Key]bool {
	set := make(map[Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
