package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sarifpatch/internal/cli"
	"github.com/yaklabco/sarifpatch/pkg/reporter"
)

const testKotlinSource = `enum class Level {
    loW_level,
    HIGH,
}
`

// testSARIF renames the enum value on line 2 and proposes a fix on a line
// the file does not have.
const testSARIF = `{
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {"name": "diktat"}},
    "results": [
      {
        "ruleId": "ENUM_VALUE",
        "message": {"text": "enum values should be in UPPER_CASE"},
        "fixes": [{
          "artifactChanges": [{
            "artifactLocation": {"uri": "src/Level.kt"},
            "replacements": [{
              "deletedRegion": {"startLine": 2, "startColumn": 5, "endColumn": 14},
              "insertedContent": {"text": "LOW_LEVEL"}
            }]
          }]
        }]
      }%s
    ]
  }]
}`

const outOfRangeResult = `,
      {
        "ruleId": "TRAILING_COMMA",
        "message": {"text": "trailing comma"},
        "fixes": [{
          "artifactChanges": [{
            "artifactLocation": {"uri": "src/Level.kt"},
            "replacements": [{"deletedRegion": {"startLine": 40}}]
          }]
        }]
      }`

// setupProject writes a report and its target into a fresh directory.
func setupProject(t *testing.T, withOutOfRange bool) (string, string, string) {
	t.Helper()

	dir := t.TempDir()
	target := filepath.Join(dir, "src", "Level.kt")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(testKotlinSource), 0o644))

	extra := ""
	if withOutOfRange {
		extra = outOfRangeResult
	}
	report := filepath.Join(dir, "report.sarif")
	require.NoError(t, os.WriteFile(report, []byte(strings.Replace(testSARIF, "%s", extra, 1)), 0o644))

	return dir, report, target
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// An empty explicit config keeps user and project files from leaking in.
	cfgFile := filepath.Join(t.TempDir(), "sarifpatch.yml")
	require.NoError(t, os.WriteFile(cfgFile, nil, 0o644))

	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestIntegration_ApplyJSON(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, false)

	stdout, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--format", "json", "--keep-temp")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	t.Cleanup(func() { _ = os.RemoveAll(output.TempDir) })

	require.Len(t, output.Files, 1)
	file := output.Files[0]
	assert.Equal(t, 1, file.Applied)
	assert.True(t, file.Changed)
	assert.Equal(t, "kotlin", file.Language)
	assert.Equal(t, filepath.Join(output.TempDir, "src", "Level.kt"), file.Fixed)

	fixed, err := os.ReadFile(file.Fixed)
	require.NoError(t, err)
	assert.Contains(t, string(fixed), "    LOW_LEVEL,\n")

	original, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, testKotlinSource, string(original), "original must stay untouched")
}

func TestIntegration_ApplyDiffCleansUp(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, false)

	stdout, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--format", "diff")
	require.NoError(t, err)

	assert.Contains(t, stdout, "-    loW_level,")
	assert.Contains(t, stdout, "+    LOW_LEVEL,")
	assert.Contains(t, stdout, "1 file changed")
}

func TestIntegration_ApplyOutputDir(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, false)
	outDir := filepath.Join(t.TempDir(), "fixed")

	_, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--output-dir", outDir)
	require.NoError(t, err)

	exported, err := os.ReadFile(filepath.Join(outDir, "src", "Level.kt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(testKotlinSource, "loW_level", "LOW_LEVEL", 1), string(exported))
}

func TestIntegration_StrictFailsOnSkippedFix(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, true)

	stdout, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--strict", "--format", "diff")
	require.ErrorIs(t, err, cli.ErrFixesSkipped)
	assert.Equal(t, cli.ExitFixesSkipped, cli.ExitCodeFromError(err))
	assert.Contains(t, stdout, "+    LOW_LEVEL,")

	_, _, err = runCLI(t, "apply", report, target, "--test-root", dir, "--format", "diff")
	require.NoError(t, err, "without --strict a skipped fix is only a warning")
}

func TestIntegration_TextReportsWarnings(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, true)

	stdout, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--output-dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, stdout, "out-of-range")
	assert.Contains(t, stdout, "1 applied")
}

func TestIntegration_UnmatchedTarget(t *testing.T) {
	t.Parallel()

	dir, report, _ := setupProject(t, false)
	other := filepath.Join(dir, "Other.kt")
	require.NoError(t, os.WriteFile(other, []byte("class Other\n"), 0o644))

	stdout, _, err := runCLI(t, "apply", report, other, "--test-root", dir, "--format", "json")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Empty(t, output.Files)
	assert.Equal(t, 1, output.Summary.ByKind["unmatched-file"])
}

func TestIntegration_MissingReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := runCLI(t, "apply", filepath.Join(dir, "missing.sarif"), "--test-root", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	dir, report, target := setupProject(t, false)

	_, _, err := runCLI(t, "apply", report, target, "--test-root", dir, "--format", "sarif")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_InitAndConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")

	_, _, err := runCLI(t, "init", "--format", "toml", "--full", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `format = "text"`)

	_, _, err = runCLI(t, "init", "--format", "toml", "--output", path)
	require.Error(t, err, "existing file without --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	stdout, _, err := runCLI(t, "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SARIFPATCH_OUTPUT_DIR")
}

func TestIntegration_DirectoryTarget(t *testing.T) {
	t.Parallel()

	dir, report, _ := setupProject(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "notes.txt"), []byte("notes\n"), 0o644))

	stdout, _, err := runCLI(t, "apply", report, filepath.Join(dir, "src"),
		"--test-root", dir, "--ext", "kt", "--format", "json")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	t.Cleanup(func() { _ = os.RemoveAll(output.TempDir) })

	require.Len(t, output.Files, 1)
	assert.Equal(t, 1, output.Files[0].Applied)
	assert.Empty(t, output.Warnings)
}
