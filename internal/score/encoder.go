package score

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tonefield/composer/internal/logger"
)

// Encoder defaults
const (
	DefaultDuration = 8  // beats
	DefaultTempo    = 60 // beats per minute

	melodyOctave = 4
)

// Encoder deterministically compiles the musician's request into a concrete
// note/chord score. It re-derives its own musical material from the catalog
// tables rather than parsing the generated text; only the per-beat sampling
// is randomized, driven by the explicit seed.
type Encoder struct {
	Duration int    // target length in beats
	Tempo    int    // beats per minute
	Seed     int64  // drives all sampling; same seed, same score
	Scale    string // optional override of the selection heuristic
}

// NewEncoder returns an encoder with the default duration and tempo.
func NewEncoder() *Encoder {
	return &Encoder{
		Duration: DefaultDuration,
		Tempo:    DefaultTempo,
	}
}

// Encode composes a score for the request and writes it to a uniquely named
// MIDI file, returning the file's path. The caller owns the file; the
// encoder never deletes it.
func (e *Encoder) Encode(musicianInput, annotation string) (string, error) {
	s, err := e.Compose(musicianInput, annotation)
	if err != nil {
		return "", err
	}
	return WriteSMF(s)
}

// Compose builds the in-memory score: a melody track and a harmony track of
// exactly Duration one-beat events each.
func (e *Encoder) Compose(musicianInput, annotation string) (*Score, error) {
	if e.Duration < 1 {
		return nil, fmt.Errorf("duration must be at least 1 beat, got %d", e.Duration)
	}
	if e.Tempo < 1 {
		return nil, fmt.Errorf("tempo must be positive, got %d", e.Tempo)
	}

	rng := rand.New(rand.NewSource(e.Seed))

	scaleName, pitches, err := e.selectScale(musicianInput, rng)
	if err != nil {
		return nil, err
	}
	logger.Info("encoder selected scale", logger.Fields{
		"scale":    scaleName,
		"duration": e.Duration,
		"tempo":    e.Tempo,
	})

	melody := e.melodyTrack(pitches, rng)
	harmony, err := e.harmonyTrack(scaleName, rng)
	if err != nil {
		return nil, err
	}

	return &Score{
		Melody:     melody,
		Harmony:    harmony,
		Tempo:      e.Tempo,
		Annotation: annotation,
	}, nil
}

// selectScale picks the scale: an explicit override wins, then a
// case-insensitive substring match on "minor"/"major", else a seeded-uniform
// draw over the whole table. This is the encoder's only branch point.
func (e *Encoder) selectScale(musicianInput string, rng *rand.Rand) (string, []string, error) {
	if e.Scale != "" {
		pitches, ok := ScaleTable[e.Scale]
		if !ok {
			return "", nil, fmt.Errorf("unknown scale override: %q", e.Scale)
		}
		return e.Scale, pitches, nil
	}

	lower := strings.ToLower(musicianInput)
	switch {
	case strings.Contains(lower, "minor"):
		return "C minor", ScaleTable["C minor"], nil
	case strings.Contains(lower, "major"):
		return "C major", ScaleTable["C major"], nil
	}

	name := ScaleNames[rng.Intn(len(ScaleNames))]
	return name, ScaleTable[name], nil
}

// melodyTrack samples one pitch class per beat for beats 1..D-1 and pins the
// final beat to the scale's root, so every melody resolves to tonic and
// fills the target duration exactly.
func (e *Encoder) melodyTrack(pitches []string, rng *rand.Rand) Track {
	notes := make([]Note, 0, e.Duration)
	for i := 0; i < e.Duration-1; i++ {
		notes = append(notes, Note{
			Pitch:  pitches[rng.Intn(len(pitches))],
			Octave: melodyOctave,
			Beats:  1,
		})
	}
	notes = append(notes, Note{
		Pitch:  pitches[0],
		Octave: melodyOctave,
		Beats:  1,
	})
	return Track{Name: "melody", Notes: notes}
}

// harmonyTrack samples one chord per beat from the full chord table for
// beats 1..D-1 (deliberately not filtered to the selected scale), then
// finalizes on the chord carrying the scale's own name. Scales without an
// identically named chord entry fail the lookup.
func (e *Encoder) harmonyTrack(scaleName string, rng *rand.Rand) (Track, error) {
	chords := make([]Chord, 0, e.Duration)
	for i := 0; i < e.Duration-1; i++ {
		name := ChordNames[rng.Intn(len(ChordNames))]
		chords = append(chords, Chord{
			Name:    name,
			Pitches: ChordTable[name],
			Beats:   1,
		})
	}

	pitches, ok := ChordTable[scaleName]
	if !ok {
		return Track{}, &ChordLookupError{Scale: scaleName, Chord: scaleName}
	}
	chords = append(chords, Chord{
		Name:    scaleName,
		Pitches: pitches,
		Beats:   1,
	})

	return Track{Name: "harmony", Chords: chords}, nil
}
