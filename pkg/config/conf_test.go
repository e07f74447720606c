package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "log.csv", c.Input)
	assert.Equal(t, "plot.png", c.Output)
	assert.Equal(t, 6, c.Count)
	assert.Equal(t, "plot-%05d.png", c.RunPattern)
	assert.Equal(t, 0.5, c.Alpha)
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "count: 3\nseed: 42\nrunPattern: run-%03d.png\nskipMissing: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Count)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, "run-%03d.png", c.RunPattern)
	assert.True(t, c.SkipMissing)
	assert.Equal(t, DefaultInput, c.Input)
	assert.Equal(t, DefaultWidth, c.Width)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("count: [1"), 0600))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("count: 0\n"), 0600))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative count", func(c *Config) { c.Count = -1 }, false},
		{"zero alpha", func(c *Config) { c.Alpha = 0 }, false},
		{"alpha above one", func(c *Config) { c.Alpha = 1.5 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"pattern without verb", func(c *Config) { c.RunPattern = "plot.png" }, false},
		{"pattern with string verb", func(c *Config) { c.RunPattern = "plot-%s.png" }, false},
		{"pattern with escaped percent", func(c *Config) { c.RunPattern = "plot%%.png" }, false},
		{"pattern with two verbs", func(c *Config) { c.RunPattern = "plot-%d-%d.png" }, false},
		{"pattern with hex verb", func(c *Config) { c.RunPattern = "run-%x.svg" }, true},
		{"pattern with literal percent", func(c *Config) { c.RunPattern = "100%%-%03d.png" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}

	var c *Config
	assert.Error(t, c.Validate())
}
