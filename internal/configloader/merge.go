package configloader

import "github.com/yaklabco/sarifpatch/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings: override overwrites base if non-empty
//   - Optional booleans: override overwrites base if non-nil, so an
//     explicit false in a later layer turns a setting back off
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base.Clone()

	if override.TestRoot != "" {
		result.TestRoot = override.TestRoot
	}
	if override.BaseDir != "" {
		result.BaseDir = override.BaseDir
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.TempPrefix != "" {
		result.TempPrefix = override.TempPrefix
	}

	if override.KeepTemp != nil {
		result.KeepTemp = config.Bool(*override.KeepTemp)
	}
	if override.Strict != nil {
		result.Strict = config.Bool(*override.Strict)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
