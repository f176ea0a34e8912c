package sarif_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifpatch/pkg/sarif"
)

const sampleLog = `{
  "$schema": "https://json.schemastore.org/sarif-2.1.0.json",
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {"name": "diktat", "version": "1.2.3"}},
    "originalUriBaseIds": {
      "SRCROOT": {"uri": "file:///home/user/project/"},
      "SRC": {"uri": "src/", "uriBaseId": "SRCROOT"}
    },
    "results": [{
      "ruleId": "ENUM_VALUE",
      "message": {"text": "enum values should be in UPPER_CASE"},
      "locations": [{
        "physicalLocation": {
          "artifactLocation": {"uri": "Main.kt", "uriBaseId": "SRC"},
          "region": {"startLine": 9, "startColumn": 5}
        }
      }],
      "fixes": [{
        "description": {"text": "rename"},
        "artifactChanges": [{
          "artifactLocation": {"uri": "Main.kt"},
          "replacements": [
            {"deletedRegion": {"startLine": 9, "startColumn": 5, "endColumn": 19},
             "insertedContent": {"text": "nameMyaSayR"}},
            {"deletedRegion": {"startLine": 12}}
          ]
        }]
      }]
    }]
  }]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := sarif.Decode(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "diktat", run.Tool.Driver.Name)
	require.Contains(t, run.OriginalURIBaseIDs, "SRC")
	assert.Equal(t, "src/", run.OriginalURIBaseIDs["SRC"].URIString())
	assert.Equal(t, "SRCROOT", run.OriginalURIBaseIDs["SRC"].BaseID())

	require.Len(t, run.Results, 1)
	result := run.Results[0]
	require.Len(t, result.Fixes, 1)
	change := result.Fixes[0].ArtifactChanges[0]
	assert.Equal(t, "Main.kt", change.ArtifactLocation.URIString())
	assert.Empty(t, change.ArtifactLocation.BaseID())

	require.Len(t, change.Replacements, 2)
	first := change.Replacements[0]
	require.NotNil(t, first.DeletedRegion.StartLine)
	assert.EqualValues(t, 9, *first.DeletedRegion.StartLine)
	assert.Nil(t, first.DeletedRegion.EndLine)
	require.NotNil(t, first.InsertedText())
	assert.Equal(t, "nameMyaSayR", *first.InsertedText())

	second := change.Replacements[1]
	assert.Nil(t, second.InsertedText(), "absent insertedContent is a deletion")
	assert.Nil(t, second.DeletedRegion.StartColumn)
}

func TestDecodeMissingURI(t *testing.T) {
	t.Parallel()

	doc, err := sarif.DecodeBytes([]byte(`{"runs":[{"tool":{"driver":{"name":"x"}},"results":[{"fixes":[{"artifactChanges":[{"artifactLocation":{},"replacements":[]}]}]}]}]}`))
	require.NoError(t, err)

	loc := doc.Runs[0].Results[0].Fixes[0].ArtifactChanges[0].ArtifactLocation
	assert.Nil(t, loc.URI)
	assert.Empty(t, loc.URIString())
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	_, err := sarif.DecodeBytes([]byte(`{"runs": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarif.ErrDecode))
}

type mapReader map[string]string

func (m mapReader) ReadText(_ context.Context, path string) (string, error) {
	text, ok := m[path]
	if !ok {
		return "", errors.New("not found")
	}
	return text, nil
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	fs := mapReader{"report.sarif": sampleLog, "broken.sarif": "not json"}

	doc, err := sarif.ReadFile(context.Background(), fs, "report.sarif")
	require.NoError(t, err)
	assert.Len(t, doc.Runs, 1)

	_, err = sarif.ReadFile(context.Background(), fs, "missing.sarif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.sarif")

	_, err = sarif.ReadFile(context.Background(), fs, "broken.sarif")
	require.ErrorIs(t, err, sarif.ErrDecode)
}
