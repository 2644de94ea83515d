package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNew_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Options{Level: "debug", Dir: dir})
	require.NoError(t, err)

	l.Info("payment %d initiated", 7)
	l.Debug("debug line")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app-"+time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "payment 7 initiated")
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNew_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Options{Level: "error", Dir: dir})
	require.NoError(t, err)
	l.Info("hidden")
	l.Error("shown")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app-"+time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
