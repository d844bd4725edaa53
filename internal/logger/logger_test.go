package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	// Must not panic and must produce no observable output.
	log.Info().Str("k", "v").Msg("discarded")
	log.Err(assert.AnError).Msg("also discarded")
}

func TestFromContext_RoundTrip(t *testing.T) {
	log := Nop()
	ctx := log.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
}

func TestNewFileLogger_WritesLogsFile(t *testing.T) {
	log := NewFileLogger("test")
	require.NotNil(t, log)
	log.Info().Msg("written to the logs file")

	execPath, err := os.Executable()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(execPath), "logs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to the logs file")
}

func TestGetChildLogger_NotNil(t *testing.T) {
	log := Nop()
	child := log.GetChildLogger()
	require.NotNil(t, child)
	child.Debug().Msg("child logger works")
}
