// Package resolve expands SARIF uriBaseId indirection into concrete paths.
//
// All paths produced here are slash-separated and host-agnostic; conversion
// to a local path happens later, when a resolved path is matched against
// target files.
package resolve

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/sarifpatch/pkg/sarif"
	"github.com/yaklabco/sarifpatch/pkg/uri"
)

// SourceRoot is the conventional id for the root of the source tree.
const SourceRoot = "%SRCROOT%"

// CycleError reports a uriBaseId chain that refers back to itself.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("uriBaseId cycle: %s", strings.Join(e.Chain, " -> "))
}

// BaseIDFor returns the uriBaseId that applies to an artifact change's
// location: its own id when set, otherwise the id of the first result
// location whose uri equals the artifact's uri.
func BaseIDFor(loc *sarif.ArtifactLocation, result *sarif.Result) string {
	if id := loc.BaseID(); id != "" {
		return id
	}
	if result == nil || loc == nil || loc.URI == nil {
		return ""
	}

	for _, l := range result.Locations {
		if l.PhysicalLocation == nil || l.PhysicalLocation.ArtifactLocation == nil {
			continue
		}
		candidate := l.PhysicalLocation.ArtifactLocation
		if candidate.URI != nil && *candidate.URI == *loc.URI {
			return candidate.BaseID()
		}
	}

	return ""
}

// BaseURI resolves baseID against the run's originalUriBaseIds.
//
// An id that is itself an absolute path (with or without a file scheme) is
// returned as is. An unknown id, including an unmapped %SRCROOT%, resolves to
// ".". Mapped entries with a relative uri are joined onto their parent's
// resolution.
func BaseURI(baseID string, run *sarif.Run) (string, error) {
	return baseURI(baseID, run, nil)
}

func baseURI(baseID string, run *sarif.Run, chain []string) (string, error) {
	if stripped := uri.DropFileScheme(baseID); uri.IsAbsolute(stripped) {
		return Clean(stripped), nil
	}

	if slices.Contains(chain, baseID) {
		return "", &CycleError{Chain: append(slices.Clone(chain), baseID)}
	}

	var entry *sarif.ArtifactLocation
	if run != nil {
		entry = run.OriginalURIBaseIDs[baseID]
	}
	if entry == nil {
		return ".", nil
	}

	chain = append(chain, baseID)

	if entry.URI == nil {
		if entry.BaseID() == "" {
			return ".", nil
		}
		return baseURI(entry.BaseID(), run, chain)
	}

	rel := uri.DropFileScheme(*entry.URI)
	if uri.IsAbsolute(rel) {
		return Clean(rel), nil
	}

	parent, err := baseURI(entry.BaseID(), run, chain)
	if err != nil {
		return "", err
	}

	return Join(parent, rel), nil
}

// Join appends an artifact URI to a resolved base. The file scheme is
// stripped and percent-escapes are kept for ToLocalPath to decode. An
// absolute artifact path ignores the base.
func Join(base, artifactURI string) string {
	rel := uri.DropFileScheme(artifactURI)
	if len(rel) > len("file:") && strings.EqualFold(rel[:len("file:")], "file:") {
		rel = rel[len("file:"):]
	}
	if uri.IsAbsolute(rel) {
		return Clean(rel)
	}
	if base == "" || base == "." {
		return Clean(rel)
	}
	return Clean(strings.TrimSuffix(toSlash(base), "/") + "/" + toSlash(rel))
}

// Clean normalises a slash path, preserving a leading UNC "//".
func Clean(p string) string {
	p = toSlash(p)
	if strings.HasPrefix(p, "//") {
		return "/" + path.Clean("/"+strings.TrimLeft(p, "/"))
	}
	return path.Clean(p)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
