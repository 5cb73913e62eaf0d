package composer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonefield/composer/internal/llm"
	"github.com/tonefield/composer/internal/pipeline"
	"github.com/tonefield/composer/internal/score"
)

type scriptedProvider struct {
	calls   int
	failOn  int // 1-based call number to fail on; 0 means never
	failErr error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, req *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.calls++
	if p.failOn != 0 && p.calls == p.failOn {
		return nil, p.failErr
	}
	return &llm.GenerationResponse{
		Text:  fmt.Sprintf("text-%d", p.calls),
		Usage: llm.Usage{InputTokens: 20, OutputTokens: 10, TotalTokens: 30},
	}, nil
}

func seedOf(v int64) *int64 { return &v }

func TestRunHappyPath(t *testing.T) {
	provider := &scriptedProvider{}
	out, err := New(provider, nil, nil).Run(context.Background(), Input{
		MusicianInput: "a sad song about rain",
		Style:         "bossa nova",
		Duration:      4,
		Scale:         "C minor",
		Seed:          seedOf(11),
		Model:         "gpt-5.1-mini",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 4, provider.calls, "one call per generative stage")
	assert.Equal(t, "text-1", out.Melody)
	assert.Equal(t, "text-2", out.Harmony)
	assert.Equal(t, "text-3", out.Rhythm)
	assert.Equal(t, "text-4", out.Composition)
	assert.Equal(t, int64(11), out.Seed)

	require.NotEmpty(t, out.MIDIPath)
	t.Cleanup(func() { os.Remove(out.MIDIPath) })
	_, err = os.Stat(out.MIDIPath)
	require.NoError(t, err, "MIDI file must exist after a successful run")

	for _, key := range []pipeline.Key{
		pipeline.KeyMusicianInput, pipeline.KeyStyle,
		pipeline.KeyMelody, pipeline.KeyHarmony, pipeline.KeyRhythm,
		pipeline.KeyComposition, pipeline.KeyMIDIFile,
	} {
		assert.True(t, out.State.Has(key), "state missing %q", key)
	}
}

func TestRunSameSeedSameMIDIBytes(t *testing.T) {
	run := func() []byte {
		out, err := New(&scriptedProvider{}, nil, nil).Run(context.Background(), Input{
			MusicianInput: "something in a minor mood",
			Style:         "ambient",
			Seed:          seedOf(777),
			Model:         "gpt-5.1-mini",
		})
		require.NoError(t, err)
		t.Cleanup(func() { os.Remove(out.MIDIPath) })

		data, err := os.ReadFile(out.MIDIPath)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, run(), run())
}

func TestRunMissingStyleFailsBeforeProvider(t *testing.T) {
	provider := &scriptedProvider{}
	out, err := New(provider, nil, nil).Run(context.Background(), Input{
		MusicianInput: "a sad song",
		Seed:          seedOf(1),
		Model:         "gpt-5.1-mini",
	})

	var missing *pipeline.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Nil(t, out)
	assert.Equal(t, 0, provider.calls)
}

func TestRunStageFailureCarriesSnapshot(t *testing.T) {
	provider := &scriptedProvider{failOn: 2, failErr: errors.New("invalid api key")}
	out, err := New(provider, nil, nil).Run(context.Background(), Input{
		MusicianInput: "a sad song",
		Style:         "jazz",
		Seed:          seedOf(1),
		Model:         "gpt-5.1-mini",
	})

	require.Nil(t, out)
	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "harmony", stageErr.Stage)
	assert.Equal(t, "text-1", stageErr.State[pipeline.KeyMelody], "snapshot keeps the melody produced before the failure")
	assert.NotContains(t, stageErr.State, pipeline.KeyHarmony)
}

func TestRunEncoderFailureSurfacesAsEncodeStage(t *testing.T) {
	out, err := New(&scriptedProvider{}, nil, nil).Run(context.Background(), Input{
		MusicianInput: "anything",
		Style:         "jazz",
		Scale:         "C lydian", // no chord shares this name
		Seed:          seedOf(1),
		Model:         "gpt-5.1-mini",
	})

	require.Nil(t, out)
	var stageErr *pipeline.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageEncode, stageErr.Stage)

	var lookupErr *score.ChordLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "C lydian", lookupErr.Scale)
}

func TestRunDefaultsDurationAndTempo(t *testing.T) {
	out, err := New(&scriptedProvider{}, nil, nil).Run(context.Background(), Input{
		MusicianInput: "a happy major tune",
		Style:         "folk",
		Seed:          seedOf(2),
		Model:         "gpt-5.1-mini",
	})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(out.MIDIPath) })

	data, err := os.ReadFile(out.MIDIPath)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))
}
