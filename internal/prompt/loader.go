package prompt

import (
	"fmt"
	"strings"

	"github.com/tonefield/composer/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetMelodySystemPrompt loads the melody stage system prompt
func (l *Loader) GetMelodySystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.MelodySystemPromptTxt)), nil
}

// GetHarmonySystemPrompt loads the harmony stage system prompt
func (l *Loader) GetHarmonySystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.HarmonySystemPromptTxt)), nil
}

// GetRhythmSystemPrompt loads the rhythm stage system prompt
func (l *Loader) GetRhythmSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.RhythmSystemPromptTxt)), nil
}

// GetStyleSystemPrompt loads the style stage system prompt
func (l *Loader) GetStyleSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.StyleSystemPromptTxt)), nil
}

// GetSystemPrompt loads the system prompt for the named stage
func (l *Loader) GetSystemPrompt(stage string) (string, error) {
	switch stage {
	case "melody":
		return l.GetMelodySystemPrompt()
	case "harmony":
		return l.GetHarmonySystemPrompt()
	case "rhythm":
		return l.GetRhythmSystemPrompt()
	case "style":
		return l.GetStyleSystemPrompt()
	default:
		return "", fmt.Errorf("no system prompt for stage: %s", stage)
	}
}
