package embedded

import (
	_ "embed"
)

// Embed the per-stage system prompts
//
//go:embed data/prompts/melody_system_prompt.txt
var MelodySystemPromptTxt []byte

//go:embed data/prompts/harmony_system_prompt.txt
var HarmonySystemPromptTxt []byte

//go:embed data/prompts/rhythm_system_prompt.txt
var RhythmSystemPromptTxt []byte

//go:embed data/prompts/style_system_prompt.txt
var StyleSystemPromptTxt []byte
