package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 1000, cfg.Iterations)
	require.Equal(t, -1.0, cfg.Sentinel)
	require.False(t, cfg.PerspectiveBackup, "Shared-result backup should be the default")
	require.Equal(t, 25, cfg.Width(), "Width should default to the board's move space")
}

func TestLoad(t *testing.T) {
	t.Run("overriding defaults from yaml", func(t *testing.T) {
		path := writeConfig(t, "iterations: 50\nboard_size: 4\nperspective_backup: true\nseed: 7\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 50, cfg.Iterations)
		require.Equal(t, 4, cfg.BoardSize)
		require.Equal(t, uint64(7), cfg.Seed)
		require.True(t, cfg.PerspectiveBackup)
		require.Equal(t, 500, cfg.Games, "Missing fields should keep defaults")
		require.Equal(t, 16, cfg.Width())
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		path := writeConfig(t, "workers: 0\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("failing on malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "iterations: [1\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("failing on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"negative iterations":  func(c *Config) { c.Iterations = -1 },
		"empty board":          func(c *Config) { c.BoardSize = 0 },
		"narrow policy width":  func(c *Config) { c.PolicyWidth = 3 },
		"negative temperature": func(c *Config) { c.Temperature = -0.5 },
		"negative ply limit":   func(c *Config) { c.MaxPlies = -1 },
		"missing output dir":   func(c *Config) { c.OutputDir = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	t.Run("accepting zero iterations", func(t *testing.T) {
		cfg := Default()
		cfg.Iterations = 0

		require.NoError(t, cfg.Validate())
	})
}
