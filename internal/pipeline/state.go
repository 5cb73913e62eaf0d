package pipeline

import "context"

// Key identifies one field of the composition state.
type Key string

// Canonical state keys, in the order the pipeline populates them.
const (
	KeyMusicianInput Key = "musician_input"
	KeyStyle         Key = "style"
	KeyMelody        Key = "melody"
	KeyHarmony       Key = "harmony"
	KeyRhythm        Key = "rhythm"
	KeyComposition   Key = "composition"
	KeyMIDIFile      Key = "midi_file"
)

// State is the accumulating record threaded through the pipeline. It keeps
// insertion order and is append-only within a run: the engine only lets a
// stage write keys it declared, so nothing overwrites another stage's output.
type State struct {
	order  []Key
	values map[Key]string
}

// NewState creates an empty state.
func NewState() State {
	return State{values: make(map[Key]string)}
}

// Get returns the value for key and whether it is present.
func (s State) Get(key Key) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s State) Has(key Key) bool {
	_, ok := s.values[key]
	return ok
}

// Set inserts or replaces the value for key, preserving insertion order.
func (s *State) Set(key Key, value string) {
	if s.values == nil {
		s.values = make(map[Key]string)
	}
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Keys returns the keys in insertion order.
func (s State) Keys() []Key {
	keys := make([]Key, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len returns the number of populated keys.
func (s State) Len() int {
	return len(s.order)
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	c := State{
		order:  make([]Key, len(s.order)),
		values: make(map[Key]string, len(s.values)),
	}
	copy(c.order, s.order)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Snapshot returns a plain map copy of the state, used when attaching the
// state at failure time to an error.
func (s State) Snapshot() map[Key]string {
	snap := make(map[Key]string, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}

// Update is the partial state delta a stage returns. The engine merges it
// into the running state after checking the stage's declared writes.
type Update map[Key]string

// View is the read-only window a stage receives over the running state.
// Reads outside the stage's declared set fail with UndeclaredDependencyError
// instead of silently dereferencing a key nobody promised to provide.
type View struct {
	stage string
	reads map[Key]bool
	state State
}

// Get returns the value for a declared key.
func (v View) Get(key Key) (string, error) {
	if !v.reads[key] {
		return "", &UndeclaredDependencyError{Stage: v.stage, Key: key}
	}
	val, ok := v.state.Get(key)
	if !ok {
		return "", &MissingInputError{Stage: v.stage, Key: key}
	}
	return val, nil
}

// Stage describes one unit of the pipeline: its name, the keys it reads, the
// keys it produces, and the function that does the work. Declaring reads and
// writes up front is what makes the engine's pre-flight check mechanical.
type Stage struct {
	Name   string
	Reads  []Key
	Writes []Key
	Run    func(ctx context.Context, view View) (Update, error)
}
