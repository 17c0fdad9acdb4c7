package moderation

import (
	"chat-room/errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// TestModerator_Censor
// The dictionary avoids words hidden inside common Portuguese words once spaces are dropped
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dictionary := []string{"idiota", "burro", "droga"}
	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Accented sentence keeps its accents",
			input:    "Você é um idiota",
			expected: "Você é um ******",
			words:    []string{"idiota"},
		},
		{
			name:     "Repeated word",
			input:    "burro burro burro",
			expected: "***** ***** *****",
			words:    []string{"burro", "burro", "burro"},
		},
		{
			name: "Leet speak split by dots",
			// 1 (index 4) . d . 1 . 0 . t . a (index 14) -> 11 characters
			input:    "Que 1.d.1.0.t.a!",
			expected: "Que ***********!",
			words:    []string{"idiota"},
		},
		{
			name:     "Uppercase with dashes",
			input:    "B-U-R-R-O demais",
			expected: "********* demais",
			words:    []string{"burro"},
		},
		{
			name:     "Word between punctuation and names",
			input:    "Não seja burro, João",
			expected: "Não seja *****, João",
			words:    []string{"burro"},
		},
		{
			name:     "Private whisper in leet speak",
			input:    "psiu, 1d10t4",
			expected: "psiu, ******",
			words:    []string{"idiota"},
		},
		{
			name:     "Broadcast greeting",
			input:    "Bom dia, Todos!",
			expected: "Bom dia, Todos!",
			words:    nil,
		},
		{
			name:     "Status text",
			input:    "entra na sala...",
			expected: "entra na sala...",
			words:    nil,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Censor(tt.input)
			req.Equal(tt.expected, content, "test=%s,", tt.name)
			req.Equal(tt.words, words, "expected=%s,words=%s", tt.expected, words)
		})
	}
}

func TestModerator_CustomReplacement(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"droga"}, '#', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	content, words := mod.Censor("Que DROGA!")
	req.Equal("Que #####!", content)
	req.Equal([]string{"droga"}, words)
}

func TestModerator_CornerCases(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given real noise and not Leet Speak associated
	dictionary := []string{"...", ",,,", "", "burro"}

	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	// Then the sentence is censored
	content, words := mod.Censor("Que burro você é")
	req.Equal("Que ***** você é", content)
	req.Equal([]string{"burro"}, words)

	// Then real noise is uncensored
	content, words = mod.Censor("sai da sala...")
	req.Equal("sai da sala...", content)
	req.Nil(words)
}

func TestNewModerator_OnlyNoise(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	mod, err := NewModerator([]string{"...", " ", ""}, replacementChar, log)
	req.ErrorIs(err, errors.ErrEmptyWords)
	req.Nil(mod)
}
