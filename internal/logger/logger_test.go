package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/figmabot/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	log, err := New(config.NewDefaultLogConfig())
	require.NoError(t, err)
	require.NotNil(t, log)

	cfg := log.GetConfig()
	assert.Equal(t, zerolog.InfoLevel, cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.True(t, cfg.EnableConsole)
	assert.False(t, cfg.EnableFile)
}

func TestLoggerBuilder_ConsoleJSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLoggerBuilder().
		WithLevel(zerolog.DebugLevel).
		WithFormat(FormatJSON).
		WithConsoleOutput(&buf).
		Build()
	require.NoError(t, err)

	log.GetZerolog().Debug().Str("room_id", "R1").Msg("resolved files")

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"room_id":"R1"`)
	assert.Contains(t, buf.String(), `"message":"resolved files"`)
}

func TestLoggerBuilder_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLoggerBuilder().
		WithLevel(zerolog.WarnLevel).
		WithFormat(FormatJSON).
		WithConsoleOutput(&buf).
		Build()
	require.NoError(t, err)

	log.GetZerolog().Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestLoggerBuilder_FileLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "figmabot.log")

	log, err := NewLoggerBuilder().
		WithLevel(zerolog.DebugLevel).
		WithFormat(FormatJSON).
		WithFile(logFile, 1, 1).
		WithConsole(false).
		Build()
	require.NoError(t, err)
	defer log.Close()

	log.GetZerolog().Debug().Msg("this is a test")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"level":"debug"`)
	assert.Contains(t, string(content), `"message":"this is a test"`)
}

func TestLoggerBuilder_NoWriters(t *testing.T) {
	_, err := NewLoggerBuilder().WithConsole(false).Build()
	assert.Error(t, err)
}

func TestLoggerBuilder_InvalidFileConfig(t *testing.T) {
	builder := NewLoggerBuilder()
	builder.config.EnableFile = true

	_, err := builder.Build()
	assert.Error(t, err)
}

func TestConvertConfig(t *testing.T) {
	cfg := ConvertConfig(config.LogConfig{
		LogLevel:  "WARN",
		LogFormat: "text",
		LogFile:   "/var/log/figmabot.log",
	})

	assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, config.DefaultMaxLogSizeMB, cfg.MaxSizeMB)
	assert.Equal(t, config.DefaultMaxLogBackups, cfg.MaxBackups)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("bogus")
	assert.Error(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel("")
	assert.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}
