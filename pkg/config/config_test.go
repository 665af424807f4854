package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[lexicon]
fuzzy_distance = 1
cache_size = 32

[grid]
rows = 10
cols = 12
algorithm = "astar"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Lexicon.FuzzyDistance)
	assert.Equal(t, 32, cfg.Lexicon.CacheSize)
	assert.True(t, cfg.Lexicon.Seed)
	assert.Equal(t, GridConfig{Rows: 10, Cols: 12, Algorithm: "astar"}, cfg.Grid)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// rows has the wrong type, so strict decoding fails
	content := `
[grid]
rows = "many"
cols = 30

[server]
max_query_len = 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Grid.Rows)
	assert.Equal(t, 30, cfg.Grid.Cols)
	assert.Equal(t, 12, cfg.Server.MaxQueryLen)
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[lexicon]
fuzzy_distance = -3
cache_size = 0

[grid]
rows = 1
cols = 1

[server]
min_query_len = 5
max_query_len = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, def.Lexicon.FuzzyDistance, cfg.Lexicon.FuzzyDistance)
	assert.Equal(t, def.Lexicon.CacheSize, cfg.Lexicon.CacheSize)
	assert.Equal(t, def.Grid.Rows, cfg.Grid.Rows)
	assert.Equal(t, def.Server.MaxQueryLen, cfg.Server.MaxQueryLen)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	cfg := DefaultConfig()
	cfg.Grid.Algorithm = "bfs"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "bfs", loaded.Grid.Algorithm)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	maxLen := 20
	steps := true
	require.NoError(t, cfg.Update(path, nil, &maxLen, &steps))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Server.MaxQueryLen)
	assert.Equal(t, 1, loaded.Server.MinQueryLen)
	assert.True(t, loaded.Server.IncludeSteps)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	changes := make(chan *Config, 8)
	w, err := NewWatcher(path, func(c *Config) { changes <- c })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	updated := DefaultConfig()
	updated.Lexicon.FuzzyDistance = 1
	require.NoError(t, SaveConfig(updated, path))

	select {
	case c := <-changes:
		assert.Equal(t, 1, c.Lexicon.FuzzyDistance)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not delivered")
	}

	cancel()
	require.NoError(t, <-done)
}
