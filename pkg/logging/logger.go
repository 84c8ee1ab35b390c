package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix is prepended to every line of text-formatted log output.
const Prefix = "🎬 "

// NewLogger creates a new hclog logger with standard settings.
// A level of the form "json" or "json:<level>" switches to JSON output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	actual, jsonFormat := splitJSONLevel(level)
	if os.Getenv("REFORMATTER_JSON_LOG") == "1" {
		jsonFormat = true
	}

	if !jsonFormat {
		output = NewPrefixWriter(Prefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(actual),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// ResolveLevel picks the effective log level: the CLI value wins, then
// REFORMATTER_LOG_LEVEL, then "warn". The second result names where the
// value came from.
func ResolveLevel(cliLevel string) (string, string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if level := os.Getenv("REFORMATTER_LOG_LEVEL"); level != "" {
		return level, "REFORMATTER_LOG_LEVEL"
	}
	return "warn", "default"
}

func splitJSONLevel(level string) (string, bool) {
	if !strings.HasPrefix(level, "json") {
		return level, false
	}
	if _, rest, ok := strings.Cut(level, ":"); ok && rest != "" {
		return rest, true
	}
	return "info", true
}

// OrNull returns l, or a logger that discards everything when l is nil.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
