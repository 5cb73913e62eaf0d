package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Builder renders the per-stage user prompts from state fields
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

var (
	melodyTmpl = template.Must(template.New("melody").Parse(
		"Generate a melody based on this input: {{.MusicianInput}}"))

	harmonyTmpl = template.Must(template.New("harmony").Parse(
		"Create harmony for this melody:\n{{.Melody}}"))

	rhythmTmpl = template.Must(template.New("rhythm").Parse(
		"Suggest a rhythm for this melody and harmony:\nMelody: {{.Melody}}\nHarmony: {{.Harmony}}"))

	styleTmpl = template.Must(template.New("style").Parse(
		"Adapt this composition to the {{.Style}} style:\nMelody: {{.Melody}}\nHarmony: {{.Harmony}}\nRhythm: {{.Rhythm}}"))
)

// SystemPrompt returns the embedded system prompt for the named stage
func (b *Builder) SystemPrompt(stage string) (string, error) {
	return b.loader.GetSystemPrompt(stage)
}

// MelodyPrompt builds the user prompt for the melody stage
func (b *Builder) MelodyPrompt(musicianInput string) (string, error) {
	return render(melodyTmpl, map[string]string{"MusicianInput": musicianInput})
}

// HarmonyPrompt builds the user prompt for the harmony stage
func (b *Builder) HarmonyPrompt(melody string) (string, error) {
	return render(harmonyTmpl, map[string]string{"Melody": melody})
}

// RhythmPrompt builds the user prompt for the rhythm stage
func (b *Builder) RhythmPrompt(melody, harmony string) (string, error) {
	return render(rhythmTmpl, map[string]string{"Melody": melody, "Harmony": harmony})
}

// StylePrompt builds the user prompt for the style stage
func (b *Builder) StylePrompt(style, melody, harmony, rhythm string) (string, error) {
	return render(styleTmpl, map[string]string{
		"Style":   style,
		"Melody":  melody,
		"Harmony": harmony,
		"Rhythm":  rhythm,
	})
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
