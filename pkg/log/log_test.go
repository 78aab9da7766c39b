package log_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/log"
)

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "csvvault.log")

	l := log.New(configs.LogConfig{FilePath: path, MaxSize: 1, Level: "debug"}, false)
	l.Info().Str("file", "people.csv").Msg("ingested")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file":"people.csv"`)
	assert.Contains(t, string(data), `"message":"ingested"`)
	assert.Contains(t, string(data), `"app":"csvvault"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l := log.New(configs.LogConfig{FilePath: path, Level: "chatty"}, false)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestGinWriter(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l := zerolog.New(&buf)
	w := log.NewGinWriter(&l, zerolog.WarnLevel)

	n, err := w.Write([]byte("[GIN-debug] route registered\n"))
	require.NoError(t, err)
	assert.Equal(t, len("[GIN-debug] route registered\n"), n)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "route registered")

	buf.Reset()

	_, err = w.Write([]byte("   \n"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
