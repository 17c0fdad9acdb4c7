package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=5000"`
	GrpcPort          int           `env:"GRPC_PORT,default=5001"`
	DebugPort         int           `env:"DEBUG_PORT,default=8081"`
	DatabaseURL       string        `env:"DATABASE_URL,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	ReaperInterval    time.Duration `env:"REAPER_INTERVAL,default=15s"`
	StaleThreshold    time.Duration `env:"STALE_THRESHOLD,default=10s"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=1m"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	CensoredWords     string        `env:"CENSORED_WORDS"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,default=*"`
	SearchLimit       int           `env:"SEARCH_LIMIT,default=50"`
}

func (c Config) Validate() error {
	if c.ReaperInterval <= 0 {
		return fmt.Errorf("REAPER_INTERVAL must be positive, got %s", c.ReaperInterval)
	}
	if c.StaleThreshold <= 0 {
		return fmt.Errorf("STALE_THRESHOLD must be positive, got %s", c.StaleThreshold)
	}
	if c.TelemetryInterval <= 0 {
		return fmt.Errorf("TELEMETRY_INTERVAL must be positive, got %s", c.TelemetryInterval)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	return nil
}

// CensoredWordList splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) CensoredWordList() []string {
	var words []string
	for _, word := range strings.Split(c.CensoredWords, ",") {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, word)
		}
	}
	return words
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
