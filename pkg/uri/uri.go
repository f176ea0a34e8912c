// Package uri converts SARIF artifact URIs into local file-system paths.
//
// SARIF producers emit artifact locations in several shapes: file URIs with
// one, two or three slashes, bare absolute paths, Windows drive paths,
// UNC shares and percent-encoded relative references. ToLocalPath accepts
// all of them and reports an absolute path that cannot exist on the current
// operating system as a *ForeignPathError.
package uri

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"runtime"
	"strings"
)

// OSFamily selects the path conventions used for conversion.
type OSFamily int

const (
	// Unix uses slash-separated paths rooted at "/".
	Unix OSFamily = iota
	// Windows uses drive letters, UNC shares and backslashes.
	Windows
)

// String returns the family name.
func (f OSFamily) String() string {
	if f == Windows {
		return "Windows"
	}
	return "UNIX"
}

// HostOS returns the family of the running operating system.
func HostOS() OSFamily {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// ErrEmpty is returned for an empty URI.
var ErrEmpty = errors.New("empty URI")

// ForeignPathError reports an absolute path that belongs to another OS family.
type ForeignPathError struct {
	// Path is the decoded path taken from the URI.
	Path string
	// Want is the family the path belongs to.
	Want OSFamily
	// Host is the family the conversion was performed for.
	Host OSFamily
}

func (e *ForeignPathError) Error() string {
	return fmt.Sprintf("current OS is not %s; unable to construct an absolute %s path from %q",
		e.Want, e.Want, e.Path)
}

type pathKind int

const (
	kindRelative pathKind = iota
	kindUnixAbsolute
	kindDrive
	kindUNC
)

// ToLocalPath converts raw into a path for the host operating system.
func ToLocalPath(raw string) (string, error) {
	return ToLocalPathFor(raw, HostOS())
}

// ToLocalPathFor converts raw into a path for the given OS family.
// Relative references stay relative and are cleaned.
func ToLocalPathFor(raw string, osf OSFamily) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmpty
	}

	decoded := unescape(stripScheme(raw))
	kind, p := classify(decoded)

	switch kind {
	case kindDrive:
		if osf != Windows {
			return "", &ForeignPathError{Path: decoded, Want: Windows, Host: osf}
		}
		return toWindows(p[:2] + cleanSlash(p[2:])), nil

	case kindUNC:
		if osf != Windows {
			return "", &ForeignPathError{Path: decoded, Want: Windows, Host: osf}
		}
		rest := strings.TrimLeft(toSlash(p), "/")
		return `\\` + toWindows(strings.TrimPrefix(path.Clean("/"+rest), "/")), nil

	case kindUnixAbsolute:
		if osf != Unix {
			return "", &ForeignPathError{Path: decoded, Want: Unix, Host: osf}
		}
		return path.Clean(p), nil

	default:
		if osf == Windows {
			return toWindows(path.Clean(toSlash(p))), nil
		}
		return path.Clean(p), nil
	}
}

// stripScheme removes a file: scheme and, for the authority form, an empty
// or "localhost" authority. A non-empty authority is kept as a UNC prefix.
func stripScheme(raw string) string {
	if len(raw) < len("file:") || !strings.EqualFold(raw[:len("file:")], "file:") {
		return raw
	}

	rest := raw[len("file:"):]
	if !strings.HasPrefix(rest, "//") {
		return rest
	}

	rest = rest[2:]
	if strings.HasPrefix(rest, "/") {
		return rest
	}

	authority, remainder, _ := strings.Cut(rest, "/")
	switch {
	case authority == "" || strings.EqualFold(authority, "localhost"):
		return "/" + remainder
	case isDriveSpec(authority):
		return authority + "/" + remainder
	default:
		return "//" + authority + "/" + remainder
	}
}

func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func classify(p string) (pathKind, string) {
	switch {
	case len(p) >= 3 && p[0] == '/' && isDriveSpec(p[1:]):
		return kindDrive, p[1:]
	case isDriveSpec(p):
		return kindDrive, p
	case strings.HasPrefix(p, "//"), strings.HasPrefix(p, `\\`):
		return kindUNC, p
	case strings.HasPrefix(p, "/"):
		return kindUnixAbsolute, p
	default:
		return kindRelative, p
	}
}

// isDriveSpec reports whether s starts with a drive letter, a colon and
// either a separator or the end of the string.
func isDriveSpec(s string) bool {
	if len(s) < 2 || s[1] != ':' || !isLetter(s[0]) {
		return false
	}
	return len(s) == 2 || s[2] == '/' || s[2] == '\\'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func toWindows(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

// cleanSlash cleans the part of a drive path after the drive letter.
func cleanSlash(p string) string {
	if p == "" {
		return `\`
	}
	return path.Clean("/" + strings.TrimLeft(toSlash(p), "/"))
}

// DropFileScheme removes everything up to and including "file://" and the
// slash in front of a drive letter. Other strings are returned unchanged
// apart from the drive-letter slash.
func DropFileScheme(s string) string {
	if _, after, found := strings.Cut(s, "file://"); found {
		s = after
	}
	if len(s) >= 3 && s[0] == '/' && s[2] == ':' {
		s = s[1:]
	}
	return s
}

// IsAbsolute reports whether p is absolute on any supported OS family:
// rooted at a slash or backslash, or starting with a drive letter.
func IsAbsolute(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' || p[0] == '\\' {
		return true
	}
	return isDriveSpec(p)
}
