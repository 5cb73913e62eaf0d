package score

// ScaleTable maps scale name to its ordered pitch classes. All entries are
// rooted at C and use sharp spellings. Fixed for the process lifetime.
var ScaleTable = map[string][]string{
	"C major":                 {"C", "D", "E", "F", "G", "A", "B"},
	"C minor":                 {"C", "D", "D#", "F", "G", "G#", "A#"},
	"C harmonic minor":        {"C", "D", "D#", "F", "G", "G#", "B"},
	"C melodic minor":         {"C", "D", "D#", "F", "G", "A", "B"},
	"C dorian":                {"C", "D", "D#", "F", "G", "A", "A#"},
	"C phrygian":              {"C", "C#", "D#", "F", "G", "G#", "A#"},
	"C lydian":                {"C", "D", "E", "F#", "G", "A", "B"},
	"C mixolydian":            {"C", "D", "E", "F", "G", "A", "A#"},
	"C locrian":               {"C", "C#", "D#", "F", "F#", "G#", "A#"},
	"C whole tone":            {"C", "D", "E", "F#", "G#", "A#"},
	"C whole-half diminished": {"C", "D", "D#", "F", "F#", "G#", "A", "B"},
}

// ScaleNames lists the scale table keys in a fixed order so that seeded
// random selection is reproducible.
var ScaleNames = []string{
	"C major",
	"C minor",
	"C harmonic minor",
	"C melodic minor",
	"C dorian",
	"C phrygian",
	"C lydian",
	"C mixolydian",
	"C locrian",
	"C whole tone",
	"C whole-half diminished",
}

// ChordTable maps chord name to its concrete pitches (note name + octave).
// The name set overlaps ScaleTable's only for "C major" and "C minor"; the
// final-beat chord lookup relies on that overlap and fails for every other
// scale.
var ChordTable = map[string][]string{
	"C major":       {"C3", "E3", "G3"},
	"C minor":       {"C3", "D#3", "G3"},
	"C diminished":  {"C3", "D#3", "F#3"},
	"C augmented":   {"C3", "E3", "G#3"},
	"C major7":      {"C3", "E3", "G3", "B3"},
	"C minor7":      {"C3", "D#3", "G3", "A#3"},
	"C dominant7":   {"C3", "E3", "G3", "A#3"},
	"C minor7b5":    {"C3", "D#3", "F#3", "A#3"},
	"C diminished7": {"C3", "D#3", "F#3", "A3"},
}

// ChordNames lists the chord table keys in a fixed order for seeded
// random selection.
var ChordNames = []string{
	"C major",
	"C minor",
	"C diminished",
	"C augmented",
	"C major7",
	"C minor7",
	"C dominant7",
	"C minor7b5",
	"C diminished7",
}
