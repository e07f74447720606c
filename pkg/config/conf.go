package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mchmarny/sigplot/pkg/chart"
	"github.com/mchmarny/sigplot/pkg/overlay"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInput      = "log.csv"
	DefaultOutput     = "plot.png"
	DefaultCount      = 6
	DefaultRunPattern = overlay.DefaultRunPattern
	DefaultAlpha      = chart.DefaultAlpha
	DefaultWidth      = 6.4
	DefaultHeight     = 4.8
)

// Config holds the invocation settings for both plotting commands.
type Config struct {
	// Input is the pairs log read by pairplot.
	Input string `yaml:"input"`
	// Output is the single image written by pairplot.
	Output string `yaml:"output"`
	// Count is the number of sampled series pairplot overlays.
	Count int `yaml:"count"`
	// Seed for the sampler, zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// Dir is where runplot writes its images.
	Dir string `yaml:"dir"`
	// RunPattern formats the runplot image name from the run number.
	RunPattern string `yaml:"runPattern"`
	// SkipMissing makes runplot skip inputs lacking a run instead of failing.
	SkipMissing bool `yaml:"skipMissing"`

	Alpha  float64 `yaml:"alpha"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:      DefaultInput,
		Output:     DefaultOutput,
		Count:      DefaultCount,
		Dir:        ".",
		RunPattern: DefaultRunPattern,
		Alpha:      DefaultAlpha,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file: %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config required")
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive: %d", c.Count)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1]: %v", c.Alpha)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size: %vx%v", c.Width, c.Height)
	}
	if err := checkRunPattern(c.RunPattern); err != nil {
		return err
	}
	return nil
}

// checkRunPattern formats two run numbers with the pattern and requires
// distinct names free of formatting errors.
func checkRunPattern(pattern string) error {
	a, b := overlay.RunFileName(pattern, 1), overlay.RunFileName(pattern, 2)
	if strings.Contains(a, "%!") || strings.Contains(b, "%!") {
		return fmt.Errorf("run pattern needs a single integer verb: %q", pattern)
	}
	if a == b {
		return fmt.Errorf("run pattern does not vary with the run number: %q", pattern)
	}
	return nil
}
