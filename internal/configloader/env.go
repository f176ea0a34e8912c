package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/sarifpatch/pkg/config"
)

// envVarPrefix is the prefix for all sarifpatch environment variables.
const envVarPrefix = "SARIFPATCH_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TEST_ROOT":   {field: "test_root", typ: envTypeString, description: "Directory fixed copies are laid out relative to"},
	"BASE_DIR":    {field: "base_dir", typ: envTypeString, description: "Directory for resolving relative SARIF paths"},
	"OUTPUT_DIR":  {field: "output_dir", typ: envTypeString, description: "Directory receiving exported fixed files"},
	"FORMAT":      {field: "format", typ: envTypeString, description: "Output format: text, table, json, or diff"},
	"COLOR":       {field: "color", typ: envTypeString, description: "Color output: auto, always, or never"},
	"LOG_LEVEL":   {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"TEMP_PREFIX": {field: "temp_prefix", typ: envTypeString, description: "Prefix for the temporary directory"},
	"KEEP_TEMP":   {field: "keep_temp", typ: envTypeBool, description: "Keep the temporary directory: true or false"},
	"STRICT":      {field: "strict", typ: envTypeBool, description: "Fail when fixes are skipped: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SARIFPATCH_ (e.g., SARIFPATCH_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field name.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "test_root":
		cfg.TestRoot = value
	case "base_dir":
		cfg.BaseDir = value
	case "output_dir":
		cfg.OutputDir = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "log_level":
		cfg.LogLevel = value
	case "temp_prefix":
		cfg.TempPrefix = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field name.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "keep_temp":
		cfg.KeepTemp = config.Bool(value)
	case "strict":
		cfg.Strict = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
