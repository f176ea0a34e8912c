// Package diag carries the non-fatal warnings raised while applying SARIF fixes.
//
// Per-item problems (a replacement without a usable region, an overlap, a file
// that matches no target) never abort processing. They are reported to a Sink
// and processing continues with the next item.
package diag

import (
	"fmt"
	"sync"
)

// Kind classifies a warning.
type Kind string

// Warning kinds.
const (
	KindMissingURI     Kind = "missing-uri"
	KindInvalidRegion  Kind = "invalid-region"
	KindBaseURICycle   Kind = "base-uri-cycle"
	KindNoFixes        Kind = "no-fixes"
	KindNoReplacements Kind = "no-replacements"
	KindUnmatchedFile  Kind = "unmatched-file"
	KindOverlap        Kind = "overlap"
	KindOutOfRange     Kind = "out-of-range"
)

// Warning is a single non-fatal problem.
type Warning struct {
	Kind Kind
	// Run is the zero-based index of the SARIF run, or -1 when not applicable.
	Run int
	// File is the resolved file path the warning concerns, if any.
	File    string
	Message string
	// Details holds additional lines, such as the list of candidate targets
	// for an unmatched file.
	Details []string
}

// String formats the warning on one line.
func (w Warning) String() string {
	if w.File == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.File, w.Message)
}

// Sink receives warnings.
type Sink interface {
	Warn(w Warning)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Warning)

// Warn calls f(w).
func (f SinkFunc) Warn(w Warning) { f(w) }

// Discard is a Sink that drops every warning.
//
//nolint:gochecknoglobals // stateless sink
var Discard Sink = SinkFunc(func(Warning) {})

// Collector records warnings in arrival order. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn records w.
func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Warnings returns a copy of all recorded warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// ByKind returns the recorded warnings of the given kind.
func (c *Collector) ByKind(kind Kind) []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Warning
	for _, w := range c.warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// Tee returns a Sink forwarding each warning to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(w Warning) {
		for _, s := range sinks {
			if s != nil {
				s.Warn(w)
			}
		}
	})
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}
