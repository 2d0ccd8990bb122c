// Package config holds everything a scrape run can be configured with.
package config

import (
	"errors"
	"farescan/internal/fares"
	"farescan/internal/report"
	"farescan/internal/scrapers/latam"
	"farescan/internal/search"
	"farescan/lib/configutil"
	"fmt"
	"os"
	"slices"
	"time"
)

const (
	DriverChrome = "chrome"
	DriverHTTP   = "http"
)

type BrowserConfig struct {
	// Driver is either "chrome" (rendered, the default) or "http" (static markup).
	Driver string `json:"driver"`
	// ChromePath overrides the chrome binary, empty means look it up.
	ChromePath string `json:"chrome_path"`
	// ShowWindow runs chrome with a visible window instead of headless.
	ShowWindow bool `json:"show_window"`
	// LaunchesPerSecond paces session starts, 0 disables pacing. Unset
	// means the default.
	LaunchesPerSecond *float64 `json:"launches_per_second"`
}

// Pacing returns the configured launch rate, 0 if pacing is disabled.
func (b BrowserConfig) Pacing() float64 {
	if b.LaunchesPerSecond == nil {
		return 0
	}
	return *b.LaunchesPerSecond
}

type Config struct {
	BaseURL        string   `json:"base_url"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	DepartureDates []string `json:"departure_dates"`
	ReturnOffsets  []int    `json:"return_offsets"`
	Workers        int      `json:"workers"`
	// RenderTimeout is a duration string, ex. "20s".
	RenderTimeout string `json:"render_timeout"`
	Output        string `json:"output"`
	// Archive is an optional sqlite file every run is also saved to.
	Archive string `json:"archive"`
	// Timezone the `watch` schedule is interpreted in.
	Timezone string        `json:"timezone"`
	Browser  BrowserConfig `json:"browser"`
}

const DefaultLaunchesPerSecond = 2.0

func ptr[T any](v T) *T {
	return &v
}

func Default() Config {
	return Config{
		BaseURL:     search.DefaultBaseURL,
		Origin:      "GRU",
		Destination: "FCO",
		DepartureDates: []string{
			"13/09/2025",
			"14/09/2025",
			"20/09/2025",
			"21/09/2025",
			"27/09/2025",
			"28/09/2025",
		},
		ReturnOffsets: slices.Clone(search.DefaultReturnOffsets),
		Workers:       fares.DefaultWorkers,
		RenderTimeout: latam.DefaultRenderTimeout.String(),
		Output:        report.DefaultPath,
		Timezone:      "America/Sao_Paulo",
		Browser: BrowserConfig{
			Driver:            DriverChrome,
			LaunchesPerSecond: ptr(DefaultLaunchesPerSecond),
		},
	}
}

// Environment variables that take precedence over the config files.
const (
	EnvChromePath = "FARESCAN_CHROME_PATH"
	EnvOutput     = "FARESCAN_OUTPUT"
	EnvArchive    = "FARESCAN_ARCHIVE"
)

// Load reads path (and its .local override) on top of the defaults, then
// applies the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, Default())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvChromePath); v != "" {
		c.Browser.ChromePath = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := getenv(EnvArchive); v != "" {
		c.Archive = v
	}
}

func (c Config) RenderTimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(c.RenderTimeout)
}

func (c Config) SearchParams() search.Params {
	return search.Params{
		BaseURL:       c.BaseURL,
		Origin:        c.Origin,
		Destination:   c.Destination,
		Departures:    c.DepartureDates,
		ReturnOffsets: c.ReturnOffsets,
	}
}

// Validate reports every problem at once so a run never starts half
// configured.
func (c Config) Validate() error {
	var errs []error
	if c.Origin == "" {
		errs = append(errs, errors.New("origin is required"))
	}
	if c.Destination == "" {
		errs = append(errs, errors.New("destination is required"))
	}
	if len(c.DepartureDates) == 0 {
		errs = append(errs, errors.New("at least one departure date is required"))
	}
	_, err := search.ParseDates(c.DepartureDates)
	if err != nil {
		errs = append(errs, err)
	}
	for _, offset := range c.ReturnOffsets {
		if offset <= 0 {
			errs = append(errs, fmt.Errorf("return offset must be positive, got %d", offset))
		}
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	timeout, err := c.RenderTimeoutDuration()
	if err != nil {
		errs = append(errs, fmt.Errorf("render_timeout: %w", err))
	} else if timeout <= 0 {
		errs = append(errs, fmt.Errorf("render_timeout must be positive, got %s", c.RenderTimeout))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	switch c.Browser.Driver {
	case DriverChrome, DriverHTTP:
	default:
		errs = append(errs, fmt.Errorf("unknown browser driver %q", c.Browser.Driver))
	}
	if c.Browser.Pacing() < 0 {
		errs = append(errs, errors.New("launches_per_second cannot be negative"))
	}
	return errors.Join(errs...)
}
