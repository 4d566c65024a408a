package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host                      string        `env:"HOST,default=127.0.0.1"`
	Port                      int           `env:"PORT,default=12345" validate:"gte=1,lte=65535"`
	LogLevel                  string        `env:"LOG_LEVEL,default=info"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	TelemetryInterval         time.Duration `env:"TELEMETRY_INTERVAL,default=30s" validate:"gt=0"`
	AskTimeout                time.Duration `env:"ASK_TIMEOUT,default=30s" validate:"gt=0"`
	OpenAIAPIKey              string        `env:"OPENAI_API_KEY"`
	OpenAIModel               string        `env:"OPENAI_MODEL,default=gpt-3.5-turbo"`
}

// CharacterRune enforces the single-character contract of the replacement
// variable before it becomes a rune.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
