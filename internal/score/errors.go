package score

import "fmt"

// ChordLookupError reports that harmony finalization found no chord entry
// matching the selected scale's root+quality name.
type ChordLookupError struct {
	Scale string
	Chord string
}

func (e *ChordLookupError) Error() string {
	return fmt.Sprintf("no chord named %q for scale %q", e.Chord, e.Scale)
}

// SerializationError reports a failure to construct or write the MIDI file.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to serialize score to %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to serialize score: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
