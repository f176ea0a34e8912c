// Package langdetect names the programming language of a fixed file so
// reports can group and label results.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = "text"

// DetectFile returns the lower-case language name for a file, using its
// name first and falling back to its content.
func DetectFile(path string, content []byte) string {
	name := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return normalize(lang)
	}

	byExtension := enry.GetLanguagesByExtension(name, content, nil)
	switch len(byExtension) {
	case 0:
	case 1:
		return normalize(byExtension[0])
	default:
		if lang, _ := enry.GetLanguageByClassifier(content, byExtension); lang != "" {
			return normalize(lang)
		}
	}

	if len(content) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	return Unknown
}

// normalize converts go-enry language names to the form used in reports.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
