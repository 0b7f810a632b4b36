package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/wikinav/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", " DEBUG ", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, logging.ParseLevel(testCase.level))
			assert.Equal(t, testCase.expected, logging.New(testCase.level, nil).GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.ValidLevel("Warn"))
	assert.False(t, logging.ValidLevel("verbose"))
}

func TestNewWritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("debug", &buf)
	logger.Debug("fetched article", logging.FieldTitle, "Go")

	assert.Contains(t, buf.String(), "fetched article")
	assert.Contains(t, buf.String(), "title=Go")
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "wikinav.log")
	logger, closer, err := logging.OpenFile(path, "warn")
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", logging.FieldTarget, "/wiki/Go")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestSetDefaultAndLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	originalLib := log.Default()
	defer func() {
		logging.SetDefault(original)
		log.SetDefault(originalLib)
	}()

	custom := logging.New("info", nil)
	logging.SetDefault(custom)
	assert.Same(t, custom, logging.Default())
	assert.Same(t, custom, log.Default())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	custom := logging.Discard()
	ctx := logging.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}
