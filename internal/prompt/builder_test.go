package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptBuilder(t *testing.T) {
	b := NewPromptBuilder()
	if b == nil {
		t.Fatal("NewPromptBuilder() returned nil")
	}
}

func TestMelodyPrompt(t *testing.T) {
	b := NewPromptBuilder()
	got, err := b.MelodyPrompt("a sad song about rain")
	if err != nil {
		t.Fatalf("MelodyPrompt() returned error: %v", err)
	}
	if !strings.Contains(got, "a sad song about rain") {
		t.Errorf("MelodyPrompt() missing musician input: %q", got)
	}
	if !strings.Contains(got, "melody") {
		t.Errorf("MelodyPrompt() missing task description: %q", got)
	}
}

func TestHarmonyPrompt(t *testing.T) {
	b := NewPromptBuilder()
	got, err := b.HarmonyPrompt("C D E F G")
	if err != nil {
		t.Fatalf("HarmonyPrompt() returned error: %v", err)
	}
	if !strings.Contains(got, "C D E F G") {
		t.Errorf("HarmonyPrompt() missing melody: %q", got)
	}
}

func TestRhythmPrompt(t *testing.T) {
	b := NewPromptBuilder()
	got, err := b.RhythmPrompt("some melody", "some harmony")
	if err != nil {
		t.Fatalf("RhythmPrompt() returned error: %v", err)
	}
	if !strings.Contains(got, "some melody") || !strings.Contains(got, "some harmony") {
		t.Errorf("RhythmPrompt() missing inputs: %q", got)
	}
}

func TestStylePrompt(t *testing.T) {
	b := NewPromptBuilder()
	got, err := b.StylePrompt("bebop", "m", "h", "r")
	if err != nil {
		t.Fatalf("StylePrompt() returned error: %v", err)
	}
	for _, want := range []string{"bebop", "Melody: m", "Harmony: h", "Rhythm: r"} {
		if !strings.Contains(got, want) {
			t.Errorf("StylePrompt() missing %q: %q", want, got)
		}
	}
}

func TestSystemPromptPerStage(t *testing.T) {
	b := NewPromptBuilder()
	for _, stage := range []string{"melody", "harmony", "rhythm", "style"} {
		content, err := b.SystemPrompt(stage)
		if err != nil {
			t.Fatalf("SystemPrompt(%q) returned error: %v", stage, err)
		}
		if content == "" {
			t.Errorf("SystemPrompt(%q) returned empty string", stage)
		}
		if strings.TrimSpace(content) != content {
			t.Errorf("SystemPrompt(%q) has surrounding whitespace", stage)
		}
	}
}

func TestSystemPromptUnknownStage(t *testing.T) {
	b := NewPromptBuilder()
	if _, err := b.SystemPrompt("percussion"); err == nil {
		t.Error("SystemPrompt() should fail for an unknown stage")
	}
}
