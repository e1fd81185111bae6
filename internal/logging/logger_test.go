package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(&logging.Config{Level: "debug", Format: "json", Output: buf})

	logger.Debug().Str("sheet", "AI RMF").Msg("opened")

	output := buf.String()
	assert.Contains(t, output, `"level":"debug"`)
	assert.Contains(t, output, `"sheet":"AI RMF"`)
	assert.Contains(t, output, `"message":"opened"`)
}

func TestNew_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(&logging.Config{Level: "warn", Format: "json", Output: buf})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(&logging.Config{Format: "console", Output: buf, NoColor: true})

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "INF")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_AutoNonTerminalIsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(&logging.Config{Format: "auto", Output: buf})

	logger.Info().Msg("auto")

	assert.Contains(t, buf.String(), `"message":"auto"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"":        zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(input), input)
	}
}

func TestNop(t *testing.T) {
	logger := logging.Nop()
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
