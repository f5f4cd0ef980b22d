// Package config loads and validates CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docx2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config value")
)

// Config holds all configuration for DOCX-to-PDF conversion.
type Config struct {
	Output   OutputConfig `yaml:"output"`
	Page     PageConfig   `yaml:"page"`
	Headers  HeaderConfig `yaml:"headers"`
	StyleMap string       `yaml:"styleMap"` // Path to a style map file (empty = none)
	Smart    bool         `yaml:"smart"`    // Use metadata-guessed format
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir        string `yaml:"dir"`        // Default output directory (empty = alongside input)
	ReturnType string `yaml:"returnType"` // "buffer", "file", "base64" (empty = file for the CLI)
}

// PageConfig defines page geometry.
type PageConfig struct {
	Format string       `yaml:"format"` // "A4", "Letter", "Legal"
	Margin MarginConfig `yaml:"margin"` // inches
}

// MarginConfig holds the four margins in inches.
type MarginConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// HeaderConfig defines header/footer preservation.
type HeaderConfig struct {
	Preserve *bool `yaml:"preserve"` // nil = default (true)
}

// DefaultConfig returns the neutral configuration: A4, 1 inch margins,
// headers preserved, file output.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{ReturnType: "file"},
		Page: PageConfig{
			Format: "A4",
			Margin: MarginConfig{Top: 1, Right: 1, Bottom: 1, Left: 1},
		},
	}
}

// PreserveHeaders resolves the preserve flag, defaulting to true.
func (c *Config) PreserveHeaders() bool {
	if c.Headers.Preserve == nil {
		return true
	}
	return *c.Headers.Preserve
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator it is treated as a file path;
// otherwise it is searched in standard locations. Returns an error if the
// file is not found: no silent fallback.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values against the library's accepted ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Page.Format) {
	case "", "a4", "letter", "legal":
	default:
		return fmt.Errorf("%w: page format %q", ErrConfigInvalid, c.Page.Format)
	}

	switch c.Output.ReturnType {
	case "", "buffer", "file", "base64":
	default:
		return fmt.Errorf("%w: return type %q", ErrConfigInvalid, c.Output.ReturnType)
	}

	for _, side := range []struct {
		name  string
		value float64
	}{
		{"top", c.Page.Margin.Top},
		{"right", c.Page.Margin.Right},
		{"bottom", c.Page.Margin.Bottom},
		{"left", c.Page.Margin.Left},
	} {
		if side.value < 0 || side.value > 3 {
			return fmt.Errorf("%w: margin %s %.2f (must be between 0 and 3 inches)", ErrConfigInvalid, side.name, side.value)
		}
	}

	return nil
}

// resolvePath searches for a named config in standard locations:
// ./<name>.yaml, then $XDG_CONFIG_HOME/docx2pdf/<name>.yaml
// (or ~/.config/docx2pdf/<name>.yaml).
func resolvePath(name string) (string, error) {
	candidates := []string{name + ".yaml", name + ".yml"}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	if configDir != "" {
		candidates = append(candidates,
			filepath.Join(configDir, "docx2pdf", name+".yaml"),
			filepath.Join(configDir, "docx2pdf", name+".yml"),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (searched %s)", ErrConfigNotFound, name, strings.Join(candidates, ", "))
}
