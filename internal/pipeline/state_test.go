package pipeline

import "testing"

func TestStateSetPreservesInsertionOrder(t *testing.T) {
	s := NewState()
	s.Set(KeyStyle, "jazz")
	s.Set(KeyMusicianInput, "a sad song")
	s.Set(KeyStyle, "bebop") // overwrite must not reorder

	keys := s.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0] != KeyStyle || keys[1] != KeyMusicianInput {
		t.Errorf("unexpected key order: %v", keys)
	}

	v, ok := s.Get(KeyStyle)
	if !ok || v != "bebop" {
		t.Errorf("expected overwritten value, got %q (ok=%v)", v, ok)
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Set(KeyMelody, "original")

	c := s.Clone()
	c.Set(KeyMelody, "changed")
	c.Set(KeyHarmony, "new")

	if v, _ := s.Get(KeyMelody); v != "original" {
		t.Errorf("clone write leaked into source: %q", v)
	}
	if s.Has(KeyHarmony) {
		t.Error("clone insert leaked into source")
	}
}

func TestStateSnapshot(t *testing.T) {
	s := NewState()
	s.Set(KeyMelody, "m")
	s.Set(KeyHarmony, "h")

	snap := s.Snapshot()
	if len(snap) != 2 || snap[KeyMelody] != "m" || snap[KeyHarmony] != "h" {
		t.Errorf("unexpected snapshot: %v", snap)
	}

	snap[KeyMelody] = "mutated"
	if v, _ := s.Get(KeyMelody); v != "m" {
		t.Error("snapshot mutation leaked into state")
	}
}

func TestZeroValueStateUsableAfterSet(t *testing.T) {
	var s State
	s.Set(KeyRhythm, "straight eighths")
	if v, ok := s.Get(KeyRhythm); !ok || v != "straight eighths" {
		t.Errorf("zero-value state did not accept write: %q (ok=%v)", v, ok)
	}
}
