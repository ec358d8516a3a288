package emit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/pyproject-generator/pkg/subst"
	"github.com/go-go-golems/pyproject-generator/pkg/templates"
	"github.com/go-go-golems/pyproject-generator/pkg/walk"
)

// DestinationExistsError reports an emission target that already exists and
// is not empty. Nothing has been written when it is returned.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination %s already exists and is not empty", e.Path)
}

// EntryError wraps a failure on a single template entry so callers can
// report which path broke the run.
type EntryError struct {
	Path string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("failed to emit %s: %v", e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Report lists what one emission run actually did. On failure it covers the
// entries completed before the error, so the caller can decide whether to
// discard the partial target.
type Report struct {
	Target  string
	Dirs    []string
	Written []string
	Skipped []string
}

// Emitter materializes a project directory from a template spec and a
// substitution map.
type Emitter struct {
	spec *templates.Spec
	m    subst.Map
}

func New(spec *templates.Spec, m subst.Map) *Emitter {
	return &Emitter{spec: spec, m: m}
}

// Plan returns the classified walk entries paired with their renamed
// destination paths, without touching the target.
func (e *Emitter) Plan() ([]PlannedEntry, error) {
	entries, err := walk.Walk(e.spec)
	if err != nil {
		return nil, err
	}
	planned := make([]PlannedEntry, 0, len(entries))
	for _, entry := range entries {
		p := PlannedEntry{Entry: entry}
		if entry.Action != walk.ActionSkip {
			dest, err := subst.RenamePath(entry.RelPath, e.m)
			if err != nil {
				return nil, err
			}
			p.Destination = dest
		}
		planned = append(planned, p)
	}
	return planned, nil
}

// PlannedEntry is a walk entry with its substituted destination path.
type PlannedEntry struct {
	walk.Entry
	Destination string
}

// Emit writes the instantiated project under target. The target must not
// exist, or must be an empty directory. Entries are processed in sorted
// order so directory creation always precedes writes beneath it. On any
// failure the report of completed entries is returned alongside the error;
// the template tree is never mutated.
func (e *Emitter) Emit(ctx context.Context, target string) (*Report, error) {
	report := &Report{Target: target}

	if err := checkDestination(target); err != nil {
		return report, err
	}

	planned, err := e.Plan()
	if err != nil {
		return report, err
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return report, fmt.Errorf("failed to create destination %s: %w", target, err)
	}

	for _, entry := range planned {
		if err := ctx.Err(); err != nil {
			return report, &EntryError{Path: entry.RelPath, Err: err}
		}
		if entry.Action == walk.ActionSkip {
			report.Skipped = append(report.Skipped, entry.RelPath)
			log.Debug().Str("path", entry.RelPath).Msg("skipping excluded entry")
			continue
		}

		dest := filepath.Join(target, filepath.FromSlash(entry.Destination))
		if entry.IsDir {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return report, &EntryError{Path: entry.RelPath, Err: err}
			}
			report.Dirs = append(report.Dirs, entry.Destination)
			log.Debug().Str("path", entry.Destination).Msg("created directory")
			continue
		}

		if err := e.emitFile(entry, dest); err != nil {
			return report, &EntryError{Path: entry.RelPath, Err: err}
		}
		report.Written = append(report.Written, entry.Destination)
		log.Debug().Str("source", entry.RelPath).Str("dest", entry.Destination).Str("action", entry.Action.String()).Msg("wrote file")
	}

	return report, nil
}

func (e *Emitter) emitFile(entry PlannedEntry, dest string) error {
	content, err := fs.ReadFile(e.spec.FS, entry.RelPath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}
	if entry.Action == walk.ActionSubstitute {
		content = subst.Apply(content, e.m)
	}

	if dir := filepath.Dir(dest); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	mode := os.FileMode(0o644)
	if entry.Mode&0o111 != 0 {
		mode = 0o755
	}
	if err := os.WriteFile(dest, content, mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// checkDestination enforces the precondition that the target does not exist
// or is an empty directory.
func checkDestination(target string) error {
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat destination %s: %w", target, err)
	}
	if !info.IsDir() {
		return &DestinationExistsError{Path: target}
	}
	children, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("failed to read destination %s: %w", target, err)
	}
	if len(children) > 0 {
		return &DestinationExistsError{Path: target}
	}
	return nil
}
