package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mway1/gametree"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, gametree.StartingFEN, cfg.StartFEN)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, gametree.DefaultConfig(), cfg.Board())
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gametree.yaml")
	data := []byte("start_fen: \"7k/4P3/8/8/8/8/8/4K3 w - - 0 1\"\nauto_promote: true\nshow_arrows: false\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Setup(path)
	require.NoError(t, err)
	assert.Equal(t, "7k/4P3/8/8/8/8/8/4K3 w - - 0 1", cfg.StartFEN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, gametree.Config{AutoPromote: true}, cfg.Board())
}

func TestSetupEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gametree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_variations: false\n"), 0o600))
	t.Setenv("GAMETREE_NO_VARIATIONS", "true")
	t.Setenv("GAMETREE_FORCED_EN_PASSANT", "true")

	cfg, err := Setup(path)
	require.NoError(t, err)
	assert.True(t, cfg.NoVariations)
	assert.True(t, cfg.ForcedEnPassant)
}

func TestSetupMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gametree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_promote: [unclosed\n"), 0o600))
	_, err := Setup(path)
	assert.Error(t, err)
}
