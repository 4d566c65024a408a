package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// TestModerator_Censor
// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dictionary := []string{"weasel", "viper", "toad"}
	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "That weasel struck again",
			expected: "That ****** struck again",
			words:    []string{"weasel"},
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "weasel weasel weasel",
			expected: "****** ****** ******",
			words:    []string{"weasel", "weasel", "weasel"},
		},
		{
			name: "Leet speak and internal punctuation",
			// w (index 8) . 3 . 4 . 5 . € l (index 17) -> 10 characters
			input:    "You sly w.3.4.5.€l here",
			expected: "You sly ********** here",
			words:    []string{"weasel"},
		},
		{
			name:     "Uppercase and extreme noise",
			input:    "V-I-P-E-R or a W.E.A.S.E.L",
			expected: "********* or a ***********",
			words:    []string{"viper", "weasel"},
		},
		{
			name:     "Accents and special characters (UTF-8)",
			input:    "Un été avec un weasel",
			expected: "Un été avec un ******",
			words:    []string{"weasel"},
		},
		{
			name:     "Word adjacent to trailing punctuation",
			input:    "Nice try, toad!",
			expected: "Nice try, ****!",
			words:    []string{"toad"},
		},
		{
			name:     "Nothing to censor",
			input:    "Welcome to the chat room",
			expected: "Welcome to the chat room",
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

func TestModerator_CornerCases(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given real noise and not Leet Speak associated
	dictionary := []string{"...", ",,,", "", "weasel"}

	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	// Then the sentence is censored
	input := "The weasel is safe"
	expected := "The ****** is safe"
	content, words := mod.Censor(input)
	req.Equal(expected, content)
	req.Equal([]string{"weasel"}, words)

	// Then real noise is uncensored
	input = "Hello ..."
	expected = "Hello ..."
	content, words = mod.Censor(input)
	req.Equal(expected, content)
	req.Nil(words)
}

func TestModerator_EmptyDictionaryPassesEverything(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a dictionary holding nothing but noise
	mod, err := NewModerator([]string{"", "  ", "!!!"}, replacementChar, log)
	req.NoError(err)

	content, words := mod.Censor("weasel viper toad")
	req.Equal("weasel viper toad", content)
	req.Nil(words)
}
