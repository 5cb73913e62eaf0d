package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleTableShape(t *testing.T) {
	require.Len(t, ScaleTable, 11)
	require.Len(t, ScaleNames, 11)

	for _, name := range ScaleNames {
		pitches, ok := ScaleTable[name]
		require.True(t, ok, "ordered name %q missing from table", name)
		assert.True(t, strings.HasPrefix(name, "C "), "scale %q not rooted at C", name)
		assert.GreaterOrEqual(t, len(pitches), 6, "scale %q too short", name)
		assert.LessOrEqual(t, len(pitches), 8, "scale %q too long", name)
		assert.Equal(t, "C", pitches[0], "scale %q must start on its root", name)
	}
}

func TestChordTableShape(t *testing.T) {
	require.Len(t, ChordTable, 9)
	require.Len(t, ChordNames, 9)

	for _, name := range ChordNames {
		pitches, ok := ChordTable[name]
		require.True(t, ok, "ordered name %q missing from table", name)
		assert.GreaterOrEqual(t, len(pitches), 3, "chord %q too small", name)

		for _, p := range pitches {
			midi, err := NoteNameToMIDI(p)
			require.NoError(t, err, "chord %q pitch %q", name, p)
			assert.GreaterOrEqual(t, midi, 0)
			assert.LessOrEqual(t, midi, 127)
			assert.True(t, strings.HasSuffix(p, "3"), "chord %q pitch %q not at octave 3", name, p)
		}
	}
}

// Only the two triads share a name with a scale. Every other scale fails
// the final-beat chord lookup on purpose.
func TestScaleChordNameOverlap(t *testing.T) {
	var overlap []string
	for _, name := range ScaleNames {
		if _, ok := ChordTable[name]; ok {
			overlap = append(overlap, name)
		}
	}
	assert.ElementsMatch(t, []string{"C major", "C minor"}, overlap)
}

func TestNoteNameToMIDI(t *testing.T) {
	tests := []struct {
		name     string
		note     string
		expected int
		wantErr  bool
	}{
		{name: "middle C", note: "C4", expected: 60},
		{name: "low C", note: "C3", expected: 48},
		{name: "sharp", note: "D#3", expected: 51},
		{name: "flat", note: "Eb3", expected: 51},
		{name: "lowest octave", note: "C-1", expected: 0},
		{name: "high B", note: "B8", expected: 119},
		{name: "bad letter", note: "H4", wantErr: true},
		{name: "missing octave", note: "C#", wantErr: true},
		{name: "too short", note: "C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NoteNameToMIDI(tt.note)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
