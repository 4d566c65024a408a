package moderation

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
)

// BenchmarkModerator_Censor measures the scan cost against a large dictionary,
// the size a production blacklist would have.
func BenchmarkModerator_Censor(b *testing.B) {
	log := logs.GetLoggerFromLevel(slog.LevelError)

	wordCount := 100_000
	words := make([]string, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	mod, err := NewModerator(words, '*', log)
	if err != nil {
		b.Fatal(err)
	}

	input := "a perfectly ordinary sentence with word42 buried in the middle of it"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mod.Censor(input)
	}
}

func BenchmarkModerator_Build(b *testing.B) {
	log := logs.GetLoggerFromLevel(slog.LevelError)

	words := make([]string, 0, 10_000)
	for i := 0; i < 10_000; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewModerator(words, '*', log); err != nil {
			b.Fatal(err)
		}
	}
}
