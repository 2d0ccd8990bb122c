package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)

	expected := Default()
	expected.ApplyEnv(os.Getenv)
	require.Equal(t, expected, cfg)
	require.NoError(t, cfg.Validate())

	timeout, err := cfg.RenderTimeoutDuration()
	require.NoError(t, err)
	require.Equal(t, "20s", timeout.String())
	require.Equal(t, []int{13, 14, 15}, cfg.ReturnOffsets)
	require.Equal(t, 6, cfg.Workers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvChromePath, "")
	t.Setenv(EnvArchive, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		destination: "LIS",
		departure_dates: ["01/10/2025"],
		browser: { driver: "http" },
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		workers: 2,
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "GRU", cfg.Origin)
	require.Equal(t, "LIS", cfg.Destination)
	require.Equal(t, []string{"01/10/2025"}, cfg.DepartureDates)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, DriverHTTP, cfg.Browser.Driver)
	require.Equal(t, DefaultLaunchesPerSecond, cfg.Browser.Pacing())

	t.Setenv(EnvOutput, "/data/out.csv")
	t.Setenv(EnvChromePath, "/usr/bin/chromium")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/out.csv", cfg.Output)
	require.Equal(t, "/usr/bin/chromium", cfg.Browser.ChromePath)
}

func TestLoadZeroPacing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		browser: { launches_per_second: 0 },
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Browser.LaunchesPerSecond)
	require.Equal(t, float64(0), cfg.Browser.Pacing())
	require.Equal(t, DriverChrome, cfg.Browser.Driver)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad date", func(c *Config) { c.DepartureDates = []string{"2025-09-13"} }},
		{"no dates", func(c *Config) { c.DepartureDates = nil }},
		{"zero offset", func(c *Config) { c.ReturnOffsets = []int{0, 14} }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad timeout", func(c *Config) { c.RenderTimeout = "twenty seconds" }},
		{"negative timeout", func(c *Config) { c.RenderTimeout = "-1s" }},
		{"unknown driver", func(c *Config) { c.Browser.Driver = "firefox" }},
		{"no origin", func(c *Config) { c.Origin = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"negative pacing", func(c *Config) { c.Browser.LaunchesPerSecond = ptr(-1.0) }},
	}
	for _, test := range cases {
		cfg := Default()
		test.modify(&cfg)
		require.Error(t, cfg.Validate(), test.name)
	}
}
