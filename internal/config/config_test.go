package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, ":8080", cfg.Listen)
	require.Equal(t, 20.0, cfg.TickHz)
}

func TestLoad_PartialFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen: \":9090\"\n"+
			"fluid:\n"+
			"  name: seawater\n"+
			"pontoon:\n"+
			"  weight: 80000\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Listen)
	require.Equal(t, "seawater", cfg.Fluid.Name)
	require.Equal(t, 80000.0, cfg.Pontoon.Weight)

	// Unnamed fields keep their defaults.
	require.Equal(t, 20.0, cfg.TickHz)
	require.Equal(t, 20.0, cfg.Pontoon.Width)
	require.Equal(t, 1, cfg.InitialPontoons)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [not, a, string"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}
