package stages

import (
	"context"

	"github.com/tonefield/composer/internal/llm"
	"github.com/tonefield/composer/internal/pipeline"
	"github.com/tonefield/composer/internal/prompt"
)

// Stage names
const (
	StageMelody  = "melody"
	StageHarmony = "harmony"
	StageRhythm  = "rhythm"
	StageStyle   = "style"
)

// Deps carries what every generative stage needs: the provider port, the
// prompt builder, and the model to ask for.
type Deps struct {
	Provider llm.Provider
	Prompts  *prompt.Builder
	Model    string
}

// Sequence returns the four generative stages in pipeline order.
func Sequence(deps Deps) []pipeline.Stage {
	return []pipeline.Stage{
		Melody(deps),
		Harmony(deps),
		Rhythm(deps),
		Style(deps),
	}
}

// Melody generates a melody description from the musician's request.
func Melody(deps Deps) pipeline.Stage {
	return pipeline.Stage{
		Name:   StageMelody,
		Reads:  []pipeline.Key{pipeline.KeyMusicianInput},
		Writes: []pipeline.Key{pipeline.KeyMelody},
		Run: func(ctx context.Context, view pipeline.View) (pipeline.Update, error) {
			musicianInput, err := view.Get(pipeline.KeyMusicianInput)
			if err != nil {
				return nil, err
			}
			userPrompt, err := deps.Prompts.MelodyPrompt(musicianInput)
			if err != nil {
				return nil, err
			}
			text, err := generate(ctx, deps, StageMelody, userPrompt)
			if err != nil {
				return nil, err
			}
			return pipeline.Update{pipeline.KeyMelody: text}, nil
		},
	}
}

// Harmony generates harmony for the melody.
func Harmony(deps Deps) pipeline.Stage {
	return pipeline.Stage{
		Name:   StageHarmony,
		Reads:  []pipeline.Key{pipeline.KeyMelody},
		Writes: []pipeline.Key{pipeline.KeyHarmony},
		Run: func(ctx context.Context, view pipeline.View) (pipeline.Update, error) {
			melody, err := view.Get(pipeline.KeyMelody)
			if err != nil {
				return nil, err
			}
			userPrompt, err := deps.Prompts.HarmonyPrompt(melody)
			if err != nil {
				return nil, err
			}
			text, err := generate(ctx, deps, StageHarmony, userPrompt)
			if err != nil {
				return nil, err
			}
			return pipeline.Update{pipeline.KeyHarmony: text}, nil
		},
	}
}

// Rhythm generates a rhythmic treatment for the melody and harmony.
func Rhythm(deps Deps) pipeline.Stage {
	return pipeline.Stage{
		Name:   StageRhythm,
		Reads:  []pipeline.Key{pipeline.KeyMelody, pipeline.KeyHarmony},
		Writes: []pipeline.Key{pipeline.KeyRhythm},
		Run: func(ctx context.Context, view pipeline.View) (pipeline.Update, error) {
			melody, err := view.Get(pipeline.KeyMelody)
			if err != nil {
				return nil, err
			}
			harmony, err := view.Get(pipeline.KeyHarmony)
			if err != nil {
				return nil, err
			}
			userPrompt, err := deps.Prompts.RhythmPrompt(melody, harmony)
			if err != nil {
				return nil, err
			}
			text, err := generate(ctx, deps, StageRhythm, userPrompt)
			if err != nil {
				return nil, err
			}
			return pipeline.Update{pipeline.KeyRhythm: text}, nil
		},
	}
}

// Style integrates melody, harmony, and rhythm into one composition
// description adapted to the requested style.
func Style(deps Deps) pipeline.Stage {
	return pipeline.Stage{
		Name:   StageStyle,
		Reads:  []pipeline.Key{pipeline.KeyStyle, pipeline.KeyMelody, pipeline.KeyHarmony, pipeline.KeyRhythm},
		Writes: []pipeline.Key{pipeline.KeyComposition},
		Run: func(ctx context.Context, view pipeline.View) (pipeline.Update, error) {
			style, err := view.Get(pipeline.KeyStyle)
			if err != nil {
				return nil, err
			}
			melody, err := view.Get(pipeline.KeyMelody)
			if err != nil {
				return nil, err
			}
			harmony, err := view.Get(pipeline.KeyHarmony)
			if err != nil {
				return nil, err
			}
			rhythm, err := view.Get(pipeline.KeyRhythm)
			if err != nil {
				return nil, err
			}
			userPrompt, err := deps.Prompts.StylePrompt(style, melody, harmony, rhythm)
			if err != nil {
				return nil, err
			}
			text, err := generate(ctx, deps, StageStyle, userPrompt)
			if err != nil {
				return nil, err
			}
			return pipeline.Update{pipeline.KeyComposition: text}, nil
		},
	}
}

// generate issues the single external call a stage makes and classifies any
// failure as transient or permanent. The returned text is passed on
// verbatim; stages perform no local validation of its structure.
func generate(ctx context.Context, deps Deps, stage, userPrompt string) (string, error) {
	systemPrompt, err := deps.Prompts.SystemPrompt(stage)
	if err != nil {
		return "", err
	}

	resp, err := deps.Provider.Generate(ctx, &llm.GenerationRequest{
		Model:        deps.Model,
		SystemPrompt: systemPrompt,
		InputArray: []map[string]any{
			{"role": "user", "content": userPrompt},
		},
	})
	if err != nil {
		return "", classify(err)
	}
	return resp.Text, nil
}

func classify(err error) error {
	if llm.IsTransient(err) {
		return &pipeline.TransientExternalError{Err: err}
	}
	return &pipeline.PermanentExternalError{Err: err}
}
