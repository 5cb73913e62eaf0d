package score

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tonefield/composer/internal/logger"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 480
	noteVelocity    = 100

	melodyChannel  = 0
	harmonyChannel = 1
)

// WriteSMF serializes the score to a format-1 standard MIDI file in the OS
// temp directory and returns its path. Track 0 carries the melody along
// with the tempo marking and the annotation text; track 1 carries the
// harmony as simultaneous note on/off pairs per chord.
func WriteSMF(s *Score) (string, error) {
	clock := smf.MetricTicks(ticksPerQuarter)
	doc := smf.New()
	doc.TimeFormat = clock

	beatTicks := clock.Ticks4th()

	melody, err := melodySMFTrack(s, beatTicks)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	harmony, err := harmonySMFTrack(s.Harmony, beatTicks)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	if err := doc.Add(melody); err != nil {
		return "", &SerializationError{Err: err}
	}
	if err := doc.Add(harmony); err != nil {
		return "", &SerializationError{Err: err}
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("composition-%s.mid", uuid.New().String()))
	if err := doc.WriteFile(path); err != nil {
		return "", &SerializationError{Path: path, Err: err}
	}

	logger.Info("🎼 wrote MIDI file", logger.Fields{
		"path":  path,
		"tempo": s.Tempo,
		"beats": s.Melody.TotalBeats(),
	})
	return path, nil
}

func melodySMFTrack(s *Score, beatTicks uint32) (smf.Track, error) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(s.Melody.Name))
	tr.Add(0, smf.MetaTempo(float64(s.Tempo)))
	if s.Annotation != "" {
		tr.Add(0, smf.MetaText(s.Annotation))
	}

	for _, n := range s.Melody.Notes {
		key, err := NoteNameToMIDI(fmt.Sprintf("%s%d", n.Pitch, n.Octave))
		if err != nil {
			return nil, err
		}
		dur := uint32(n.Beats * float64(beatTicks))
		tr.Add(0, midi.NoteOn(melodyChannel, uint8(key), noteVelocity))
		tr.Add(dur, midi.NoteOff(melodyChannel, uint8(key)))
	}

	tr.Close(0)
	return tr, nil
}

func harmonySMFTrack(t Track, beatTicks uint32) (smf.Track, error) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(t.Name))

	for _, c := range t.Chords {
		keys := make([]uint8, 0, len(c.Pitches))
		for _, p := range c.Pitches {
			key, err := NoteNameToMIDI(p)
			if err != nil {
				return nil, err
			}
			keys = append(keys, uint8(key))
		}

		for _, key := range keys {
			tr.Add(0, midi.NoteOn(harmonyChannel, key, noteVelocity))
		}
		dur := uint32(c.Beats * float64(beatTicks))
		for i, key := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = dur
			}
			tr.Add(delta, midi.NoteOff(harmonyChannel, key))
		}
	}

	tr.Close(0)
	return tr, nil
}
