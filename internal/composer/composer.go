package composer

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/tonefield/composer/internal/llm"
	"github.com/tonefield/composer/internal/logger"
	"github.com/tonefield/composer/internal/metrics"
	"github.com/tonefield/composer/internal/observability"
	"github.com/tonefield/composer/internal/pipeline"
	"github.com/tonefield/composer/internal/prompt"
	"github.com/tonefield/composer/internal/score"
	"github.com/tonefield/composer/internal/stages"
)

// StageEncode is the terminal, non-generative stage that turns the
// accumulated composition into a MIDI file.
const StageEncode = "encode"

// Input is one composition request. MusicianInput and Style are required;
// everything else has a documented default.
type Input struct {
	MusicianInput string
	Style         string
	Duration      int    // beats; defaults to score.DefaultDuration
	Tempo         int    // bpm; defaults to score.DefaultTempo
	Scale         string // optional scale override for the encoder
	Seed          *int64 // nil means derive from the wall clock
	Model         string
}

// Output is the result of a successful run: the full final state plus each
// produced field projected out for direct access.
type Output struct {
	State       pipeline.State
	Melody      string
	Harmony     string
	Rhythm      string
	Composition string
	MIDIPath    string
	Seed        int64
}

// Composer wires the generative stages and the encoder into one pipeline
// run, with metrics and tracing around the whole thing.
type Composer struct {
	provider  llm.Provider
	prompts   *prompt.Builder
	engineCfg pipeline.Config
	cw        *metrics.Client
	sentryM   *metrics.SentryMetrics
}

// New creates a composer around a provider. Metrics clients may be nil.
func New(provider llm.Provider, cw *metrics.Client, sentryM *metrics.SentryMetrics) *Composer {
	return &Composer{
		provider:  provider,
		prompts:   prompt.NewPromptBuilder(),
		engineCfg: pipeline.DefaultConfig(),
		cw:        cw,
		sentryM:   sentryM,
	}
}

// Run executes the full composition pipeline for one request and returns the
// final state. On failure the output is nil and the error carries the
// failing stage and a snapshot of the state at that point.
func (c *Composer) Run(ctx context.Context, in Input) (*Output, error) {
	start := time.Now()
	runID := uuid.New().String()

	transaction := sentry.StartTransaction(ctx, "composer.run")
	transaction.SetTag("model", in.Model)
	transaction.SetTag("run_id", runID)
	ctx = transaction.Context()
	defer transaction.Finish()

	trace := observability.GetClient().StartTrace(ctx, "composition", map[string]interface{}{
		"run_id": runID,
		"style":  in.Style,
		"model":  in.Model,
	})
	defer trace.Finish()

	seed := time.Now().UnixNano()
	if in.Seed != nil {
		seed = *in.Seed
	}

	enc := score.NewEncoder()
	if in.Duration > 0 {
		enc.Duration = in.Duration
	}
	if in.Tempo > 0 {
		enc.Tempo = in.Tempo
	}
	enc.Scale = in.Scale
	enc.Seed = seed

	deps := stages.Deps{
		Provider: c.observed(trace),
		Prompts:  c.prompts,
		Model:    in.Model,
	}
	sequence := append(stages.Sequence(deps), encodeStage(enc))

	initial := pipeline.NewState()
	if in.MusicianInput != "" {
		initial.Set(pipeline.KeyMusicianInput, in.MusicianInput)
	}
	if in.Style != "" {
		initial.Set(pipeline.KeyStyle, in.Style)
	}

	cfg := c.engineCfg
	cfg.OnStage = func(stage string, duration time.Duration, err error) {
		if c.cw != nil {
			c.cw.RecordStage(stage, duration, err == nil)
		}
		if c.sentryM != nil {
			c.sentryM.RecordStage(ctx, stage, duration, err == nil)
		}
	}

	final, err := pipeline.NewEngine(cfg).Run(ctx, initial, sequence)
	c.recordRun(ctx, time.Since(start), err == nil)
	if err != nil {
		logger.Error("composition run failed", err, logger.Fields{
			"run_id": runID,
			"model":  in.Model,
			"seed":   seed,
		})
		return nil, err
	}

	melody, _ := final.Get(pipeline.KeyMelody)
	harmony, _ := final.Get(pipeline.KeyHarmony)
	rhythm, _ := final.Get(pipeline.KeyRhythm)
	composition, _ := final.Get(pipeline.KeyComposition)
	midiPath, _ := final.Get(pipeline.KeyMIDIFile)
	logger.Info("🎶 composition run completed", logger.Fields{
		"run_id":      runID,
		"midi_path":   midiPath,
		"seed":        seed,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Output{
		State:       final,
		Melody:      melody,
		Harmony:     harmony,
		Rhythm:      rhythm,
		Composition: composition,
		MIDIPath:    midiPath,
		Seed:        seed,
	}, nil
}

func (c *Composer) recordRun(ctx context.Context, duration time.Duration, success bool) {
	if c.cw != nil {
		c.cw.RecordRunDuration(duration, success)
	}
	if c.sentryM != nil {
		c.sentryM.RecordRunDuration(ctx, duration, success)
	}
}

// observed wraps the provider so every generation call is recorded on the
// Langfuse trace and in the token metrics.
func (c *Composer) observed(trace *observability.Trace) llm.Provider {
	return &observedProvider{inner: c.provider, trace: trace, composer: c}
}

type observedProvider struct {
	inner    llm.Provider
	trace    *observability.Trace
	composer *Composer
}

func (p *observedProvider) Name() string {
	return p.inner.Name()
}

func (p *observedProvider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	gen := p.trace.Generation(p.inner.Name(), map[string]interface{}{
		"model": request.Model,
	})
	defer gen.Finish()

	resp, err := p.inner.Generate(ctx, request)
	if err != nil {
		gen.SetLevel("ERROR")
		gen.Output(err.Error())
		return nil, err
	}

	inputs := make([]map[string]interface{}, 0, len(request.InputArray)+1)
	inputs = append(inputs, map[string]interface{}{"role": "developer", "content": request.SystemPrompt})
	inputs = append(inputs, request.InputArray...)
	gen.LogGeneration(request.Model, inputs, resp, nil)

	if p.composer.cw != nil {
		p.composer.cw.RecordTokenUsage(request.Model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	if p.composer.sentryM != nil {
		p.composer.sentryM.RecordTokenUsage(ctx, request.Model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	return resp, nil
}

// encodeStage wraps the deterministic encoder as the pipeline's terminal
// stage. Encoder failures are permanent; the engine will not retry them.
func encodeStage(enc *score.Encoder) pipeline.Stage {
	return pipeline.Stage{
		Name:   StageEncode,
		Reads:  []pipeline.Key{pipeline.KeyMusicianInput, pipeline.KeyComposition},
		Writes: []pipeline.Key{pipeline.KeyMIDIFile},
		Run: func(ctx context.Context, view pipeline.View) (pipeline.Update, error) {
			musicianInput, err := view.Get(pipeline.KeyMusicianInput)
			if err != nil {
				return nil, err
			}
			composition, err := view.Get(pipeline.KeyComposition)
			if err != nil {
				return nil, err
			}
			path, err := enc.Encode(musicianInput, composition)
			if err != nil {
				return nil, err
			}
			return pipeline.Update{pipeline.KeyMIDIFile: path}, nil
		},
	}
}
