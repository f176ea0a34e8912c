package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, settings are written commented out.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// templateField describes one setting in the generated template.
type templateField struct {
	key         string
	description string
	value       any
}

func templateFields() []templateField {
	def := NewConfig()
	return []templateField{
		{"test_root", "Directory fixed copies are laid out relative to. Defaults to the enclosing git work tree.", ""},
		{"base_dir", "Directory used to resolve relative SARIF artifact paths. Defaults to the SARIF file's directory.", ""},
		{"output_dir", "Copy each fixed file here, mirroring its location under test_root.", ""},
		{"format", "Output format: text, table, json, or diff", string(def.Format)},
		{"color", "Colorized output: auto, always, or never", string(def.Color)},
		{"log_level", "Log level: debug, info, warn, or error", def.LogLevel},
		{"temp_prefix", "Prefix for the temporary directory holding fixed copies", def.TempPrefix},
		{"keep_temp", "Keep the temporary directory after exit", false},
		{"strict", "Exit non-zero when any fix is skipped or dropped", false},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	format := strings.ToLower(opts.Format)
	if format == "" || format == "yml" {
		format = "yaml"
	}
	if format != "yaml" && format != "toml" {
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, field := range templateFields() {
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(field.description, commentWrapWidth))
		buf.WriteString("\n")

		line := formatField(format, field)
		if !opts.Full {
			line = "# " + line
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func formatField(format string, field templateField) string {
	sep := ": "
	if format == "toml" {
		sep = " = "
	}

	switch v := field.value.(type) {
	case bool:
		return fmt.Sprintf("%s%s%t", field.key, sep, v)
	case string:
		return fmt.Sprintf("%s%s%q", field.key, sep, v)
	default:
		return fmt.Sprintf("%s%s%v", field.key, sep, v)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# sarifpatch configuration
# See: https://github.com/yaklabco/sarifpatch`
}
