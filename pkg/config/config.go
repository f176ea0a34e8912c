// Package config defines core configuration types for sarifpatch.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// ColorMode controls colorized output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultTempPrefix prefixes the temporary directory holding fixed copies.
const DefaultTempPrefix = "sarifpatch-"

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "warn"

// Config is the root configuration structure for sarifpatch.
type Config struct {
	// TestRoot is the directory fixed copies are laid out relative to.
	// Empty means the enclosing git work tree, if any.
	TestRoot string `yaml:"test_root,omitempty" toml:"test_root,omitempty"`

	// BaseDir resolves relative paths found in SARIF documents.
	// Empty means the directory of the SARIF file.
	BaseDir string `yaml:"base_dir,omitempty" toml:"base_dir,omitempty"`

	// OutputDir receives a copy of every fixed file when set.
	OutputDir string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty" toml:"format,omitempty"`

	// Color is "auto", "always" or "never".
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// TempPrefix prefixes the temporary directory name.
	TempPrefix string `yaml:"temp_prefix,omitempty" toml:"temp_prefix,omitempty"`

	// KeepTemp keeps the temporary directory after the command exits.
	KeepTemp *bool `yaml:"keep_temp,omitempty" toml:"keep_temp,omitempty"`

	// Strict turns skipped or dropped fixes into a failing exit code.
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:     FormatText,
		Color:      ColorAuto,
		LogLevel:   DefaultLogLevel,
		TempPrefix: DefaultTempPrefix,
	}
}

// KeepTempEnabled reports whether the temporary directory is kept.
func (c *Config) KeepTempEnabled() bool {
	return c != nil && c.KeepTemp != nil && *c.KeepTemp
}

// StrictEnabled reports whether strict mode is on.
func (c *Config) StrictEnabled() bool {
	return c != nil && c.Strict != nil && *c.Strict
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
