package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
	return path
}

func TestDefault(t *testing.T) {
	config, err := Process([]string{})
	require.NoError(t, err)

	assert.Equal(t, "nancy.dat", config.Output)
	assert.Equal(t, []string{"vampire", "nancy1", "nancy2", "nancy3", "nancy4", "nancy5"}, config.Games)
	assert.False(t, config.Cache.Enabled())
	assert.Equal(t, time.Hour, config.Cache.Expiry())
}

func TestProcess(t *testing.T) {
	// yaml config
	{
		path := writeConfig(t, "config.yaml", `
output: build/nancy.dat
games: [nancy1, nancy2]
`)
		config, err := Process([]string{path})
		require.NoError(t, err)
		assert.Equal(t, "build/nancy.dat", config.Output)
		assert.Equal(t, []string{"nancy1", "nancy2"}, config.Games)
		assert.Equal(t, 3600, config.Cache.TTL)
	}

	// json config
	{
		path := writeConfig(t, "config.json", `{
  "cache": {
    "directory": "/tmp/nancy-cache",
    "compress": true
  }
}`)
		config, err := Process([]string{path})
		require.NoError(t, err)
		assert.Equal(t, "nancy.dat", config.Output)
		assert.True(t, config.Cache.Enabled())
		assert.True(t, config.Cache.Compress)
	}

	// multiple yaml
	{
		first := writeConfig(t, "config1.yaml", `
cache:
  redis: localhost:6379
`)
		second := writeConfig(t, "config2.yaml", `
cache:
  ttl: 60
`)
		config, err := Process([]string{first, second})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", config.Cache.Redis)
		assert.Equal(t, time.Minute, config.Cache.Expiry())
	}
}

func TestProcessInvalid(t *testing.T) {
	for name, contents := range map[string]string{
		"unknown game": "games: [nancy9]\n",
		"negative ttl": "cache:\n  ttl: -1\n",
		"wrong type":   "output: 5\n",
	} {
		path := writeConfig(t, "config.yaml", contents)
		_, err := Process([]string{path})
		assert.Error(t, err, name)
	}

	_, err := Process([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	path := writeConfig(t, "config.toml", "output = 'x'\n")
	_, err = Process([]string{path})
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	config, err := Process([]string{})
	require.NoError(t, err)

	data, err := config.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: nancy.dat")

	path := writeConfig(t, "dumped.yaml", string(data))
	reloaded, err := Process([]string{path})
	require.NoError(t, err)
	assert.Equal(t, config, reloaded)
}
