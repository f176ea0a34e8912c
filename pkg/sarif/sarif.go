// Package sarif holds the subset of the SARIF 2.1.0 object model needed to
// read fixes from a log. It is a consumer-side model: it never validates a
// document and ignores every property it does not use.
package sarif

// Log is the top-level SARIF document.
type Log struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version,omitempty"`
	Runs    []Run  `json:"runs"`
}

// Run is a single invocation of an analysis tool.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results,omitempty"`
	// OriginalURIBaseIDs maps a uriBaseId to the location it stands for.
	// Entries may themselves refer to another id through URIBaseID.
	OriginalURIBaseIDs map[string]*ArtifactLocation `json:"originalUriBaseIds,omitempty"`
}

// Tool describes the analysis tool that produced a run.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver is the tool component that ran the analysis.
type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version,omitempty"`
	InformationURI string `json:"informationUri,omitempty"`
}

// Result is a single finding.
type Result struct {
	RuleID    string     `json:"ruleId,omitempty"`
	Level     string     `json:"level,omitempty"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Fixes     []Fix      `json:"fixes,omitempty"`
}

// Message is a plain-text message.
type Message struct {
	Text string `json:"text,omitempty"`
}

// Location wraps a physical location.
type Location struct {
	PhysicalLocation *PhysicalLocation `json:"physicalLocation,omitempty"`
}

// PhysicalLocation points into an artifact.
type PhysicalLocation struct {
	ArtifactLocation *ArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *Region           `json:"region,omitempty"`
}

// ArtifactLocation identifies a file, possibly relative to a named base.
type ArtifactLocation struct {
	// URI is nil when the property is absent.
	URI         *string  `json:"uri,omitempty"`
	URIBaseID   *string  `json:"uriBaseId,omitempty"`
	Index       *int64   `json:"index,omitempty"`
	Description *Message `json:"description,omitempty"`
}

// Fix is a proposed set of changes for a result.
type Fix struct {
	Description     *Message         `json:"description,omitempty"`
	ArtifactChanges []ArtifactChange `json:"artifactChanges"`
}

// ArtifactChange is the set of replacements for one artifact.
type ArtifactChange struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Replacements     []Replacement    `json:"replacements"`
}

// Replacement removes a region and optionally inserts content in its place.
type Replacement struct {
	DeletedRegion   Region           `json:"deletedRegion"`
	InsertedContent *ArtifactContent `json:"insertedContent,omitempty"`
}

// ArtifactContent is textual content to insert.
type ArtifactContent struct {
	Text *string `json:"text,omitempty"`
}

// Region is a text region. All fields are 1-based; nil means absent.
type Region struct {
	StartLine   *int64           `json:"startLine,omitempty"`
	StartColumn *int64           `json:"startColumn,omitempty"`
	EndLine     *int64           `json:"endLine,omitempty"`
	EndColumn   *int64           `json:"endColumn,omitempty"`
	Snippet     *ArtifactContent `json:"snippet,omitempty"`
}

// URIString returns the artifact URI, or "" when absent.
func (a *ArtifactLocation) URIString() string {
	if a == nil || a.URI == nil {
		return ""
	}
	return *a.URI
}

// BaseID returns the uriBaseId, or "" when absent.
func (a *ArtifactLocation) BaseID() string {
	if a == nil || a.URIBaseID == nil {
		return ""
	}
	return *a.URIBaseID
}

// InsertedText returns the text to insert, or nil for a pure deletion.
func (r Replacement) InsertedText() *string {
	if r.InsertedContent == nil {
		return nil
	}
	return r.InsertedContent.Text
}
