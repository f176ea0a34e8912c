//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/sarifpatch"

// fixtureDir holds the SARIF documents and sources used by the adapter tests.
var fixtureDir = filepath.Join("pkg", "adapter", "testdata")

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"fmt":   Lint.Fmt,
	"smoke": Smoke.Default,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Smoke st.Namespace
)

// Build compiles bin/sarifpatch with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building sarifpatch...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/sarifpatch")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Install installs sarifpatch to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/sarifpatch")
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs all tests through gotestsum with race detection and coverage.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs each fuzz target for FUZZTIME (default 20s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "20s")
	targets := []struct{ pkg, name string }{
		{"./pkg/fix", "FuzzApplyOne"},
		{"./pkg/fix", "FuzzGenerateDiff"},
		{"./pkg/fsutil", "FuzzSplitJoinLines"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s in %s...\n", t.name, t.pkg)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+t.name+"$", "-fuzztime", fuzzTime, t.pkg); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return nil
}

// Bench runs the language detection benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/langdetect/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// Gate runs the checks CI requires, without modifying the tree.
func (CI) Gate() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	st.SerialDeps(CI.Vet, CI.Lint, Build, Test.Default, Smoke.Default)
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without auto-fix.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Default applies every fixture document with the built binary.
func (Smoke) Default() {
	st.SerialDeps(Smoke.Python, Smoke.Kotlin, Smoke.Overlap, Smoke.MultiRun)
}

// Python applies python.sarif, whose paths go through a uriBaseId.
func (Smoke) Python() error {
	return smoke("python.sarif", "src/python/example.py")
}

// Kotlin applies kotlin.sarif.
func (Smoke) Kotlin() error {
	return smoke("kotlin.sarif", "src/kotlin/EnumValueSnakeCaseTest.kt")
}

// Overlap applies overlap.sarif; one of its fixes is dropped.
func (Smoke) Overlap() error {
	return smoke("overlap.sarif", "src/csharp/NeedsFix.cs")
}

// MultiRun applies multirun.sarif; one of its files has no target.
func (Smoke) MultiRun() error {
	return smoke("multirun.sarif", "src/kotlin/EnumValueSnakeCaseTest.kt")
}

// smoke runs the binary on a fixture and checks it exits cleanly. Skipped
// and dropped fixes are expected in some fixtures, so strict mode stays off.
func smoke(document string, targets ...string) error {
	st.Deps(Build)

	args := []string{"apply", filepath.Join(fixtureDir, document)}
	for _, t := range targets {
		args = append(args, filepath.Join(fixtureDir, filepath.FromSlash(t)))
	}
	args = append(args, "--test-root", fixtureDir, "--format", "diff", "--config", "")

	fmt.Printf("sarifpatch %s\n", strings.Join(args, " "))
	if err := sh.RunV(binary, args...); err != nil {
		return fmt.Errorf("smoke %s: %w", document, err)
	}
	return nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
