package score

import (
	"fmt"
	"strings"
)

// Note is a single pitched event.
type Note struct {
	Pitch  string // pitch class, e.g. "D#"
	Octave int
	Beats  float64
}

// Chord is a set of simultaneous pitches played as one harmonic unit.
type Chord struct {
	Name    string
	Pitches []string // concrete pitches with octave, e.g. "G3"
	Beats   float64
}

// Track is a timed sequence of notes or chords. A track carries either
// notes or chords, never both.
type Track struct {
	Name   string
	Notes  []Note
	Chords []Chord
}

// TotalBeats returns the summed duration of the track's events.
func (t Track) TotalBeats() float64 {
	total := 0.0
	for _, n := range t.Notes {
		total += n.Beats
	}
	for _, c := range t.Chords {
		total += c.Beats
	}
	return total
}

// Score is the complete timed structure submitted for serialization: one
// melody track, one harmony track, a tempo marking, and a text annotation.
type Score struct {
	Melody     Track
	Harmony    Track
	Tempo      int // beats per minute
	Annotation string
}

// NoteNameToMIDI converts a note name like "E1", "C4", "F#3", "Bb2" to a MIDI
// note number. Format: <note><accidental?><octave> where:
//   - note: A-G (case insensitive)
//   - accidental: # (sharp) or b (flat), optional
//   - octave: -1 to 9 (C4 = 60 = middle C)
func NoteNameToMIDI(noteName string) (int, error) {
	if len(noteName) < 2 {
		return 0, fmt.Errorf("note name too short: %s", noteName)
	}

	// Parse note letter (A-G)
	noteChar := strings.ToUpper(string(noteName[0]))
	if noteChar < "A" || noteChar > "G" {
		return 0, fmt.Errorf("invalid note letter: %s", noteChar)
	}

	// Note semitone offsets from C
	noteOffsets := map[string]int{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
	}
	semitone := noteOffsets[noteChar]

	// Check for accidental (# or b)
	idx := 1
	if idx < len(noteName) {
		if noteName[idx] == '#' {
			semitone++
			idx++
		} else if noteName[idx] == 'b' {
			semitone--
			idx++
		}
	}

	// Parse octave (can be negative like -1)
	if idx >= len(noteName) {
		return 0, fmt.Errorf("missing octave in note name: %s", noteName)
	}

	octaveStr := noteName[idx:]
	var octave int
	_, err := fmt.Sscanf(octaveStr, "%d", &octave)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %s: %w", noteName, err)
	}

	// MIDI calculation: (octave + 1) * 12 + semitone
	// This gives C-1 = 0, C0 = 12, C4 = 60
	midiNote := (octave+1)*12 + semitone

	// Clamp to valid MIDI range
	if midiNote < 0 {
		midiNote = 0
	}
	if midiNote > 127 {
		midiNote = 127
	}

	return midiNote, nil
}
