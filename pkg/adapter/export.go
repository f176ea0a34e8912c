package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/sarifpatch/pkg/fsutil"
)

// ErrOutputIsTarget is returned when exporting would overwrite a target.
var ErrOutputIsTarget = errors.New("export would overwrite the target file")

// Export copies the fixed files of res into outputDir, mirroring their
// location relative to the test root. When a file was fixed by several runs
// the last copy wins. It returns the written paths.
func (a *Adapter) Export(ctx context.Context, res *Result, outputDir string) ([]string, error) {
	if res == nil || len(res.Files) == 0 {
		return nil, nil
	}

	latest := make(map[string]FileOutcome, len(res.Files))
	order := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		if _, seen := latest[f.Target]; !seen {
			order = append(order, f.Target)
		}
		latest[f.Target] = f
	}

	written := make([]string, 0, len(order))
	for _, target := range order {
		f := latest[target]

		canonical, err := a.fs.Canonicalize(target)
		if err != nil {
			return written, err
		}
		dest := fsutil.MirrorPath(outputDir, canonical, a.testRoot)

		same, err := a.fs.SameFile(target, dest)
		if err != nil {
			return written, err
		}
		if same {
			return written, fmt.Errorf("%w: %s", ErrOutputIsTarget, target)
		}

		content, err := a.fs.ReadText(ctx, f.Fixed)
		if err != nil {
			return written, err
		}

		info, err := os.Stat(target)
		if err != nil {
			return written, fmt.Errorf("stat %s: %w", target, err)
		}

		if _, err := fsutil.WriteAtomicIfChanged(ctx, dest, []byte(content), info.Mode().Perm()); err != nil {
			return written, err
		}
		written = append(written, dest)
	}

	return written, nil
}
