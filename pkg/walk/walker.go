package walk

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/go-go-golems/pyproject-generator/pkg/templates"
)

// Action classifies how a template path is handled during emission.
type Action int

const (
	// ActionCopy transfers bytes verbatim (directories and binary files).
	ActionCopy Action = iota
	// ActionSubstitute runs token replacement over the file contents.
	ActionSubstitute
	// ActionSkip omits the path entirely.
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionSubstitute:
		return "substitute"
	case ActionSkip:
		return "skip"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Entry is one classified path from a template tree.
type Entry struct {
	RelPath string
	Action  Action
	IsDir   bool
	Mode    fs.FileMode
}

// sniffLen bounds how much of a file is read for the NUL-byte heuristic.
const sniffLen = 8000

var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".pdf": {},
	".zip": {}, ".gz": {}, ".tar": {}, ".bz2": {}, ".xz": {}, ".7z": {},
	".whl": {}, ".pyc": {}, ".pyd": {}, ".so": {}, ".dylib": {}, ".dll": {}, ".exe": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {}, ".otf": {},
	".db": {}, ".sqlite": {}, ".sqlite3": {}, ".jar": {}, ".bin": {},
}

// Walk enumerates every path under the template root and assigns each an
// Action. The result is sorted by relative path, so re-walking the same
// spec is deterministic regardless of filesystem iteration order. Excluded
// directories are recorded once as Skip and their subtrees are not entered.
func Walk(spec *templates.Spec) ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(spec.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk template path %s: %w", p, err)
		}
		if p == "." {
			return nil
		}
		if p == templates.ManifestName {
			entries = append(entries, Entry{RelPath: p, Action: ActionSkip})
			return nil
		}

		excluded, err := matchesAny(spec.Exclude, p)
		if err != nil {
			return err
		}
		if excluded {
			entries = append(entries, Entry{RelPath: p, Action: ActionSkip, IsDir: d.IsDir()})
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat template path %s: %w", p, err)
		}

		if d.IsDir() {
			entries = append(entries, Entry{RelPath: p, Action: ActionCopy, IsDir: true, Mode: info.Mode()})
			return nil
		}

		binary, err := IsBinary(spec.FS, p)
		if err != nil {
			return err
		}
		action := ActionSubstitute
		if binary {
			action = ActionCopy
		}
		entries = append(entries, Entry{RelPath: p, Action: action, Mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, nil
}

// matchesAny reports whether rel matches one of the exclusion patterns.
// Bare patterns like "__pycache__" or "*.pyc" match at any depth. A
// malformed pattern is an error, not a silent non-match.
func matchesAny(patterns []string, rel string) (bool, error) {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		candidate := base
		if strings.ContainsRune(pattern, '/') {
			candidate = rel
		}
		ok, err := doublestar.Match(pattern, candidate)
		if err != nil {
			return false, fmt.Errorf("invalid exclusion pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// IsBinary applies the classification heuristic: a known binary extension,
// or a NUL byte within the first sniffLen bytes.
func IsBinary(fsys fs.FS, p string) (bool, error) {
	if _, ok := binaryExtensions[strings.ToLower(path.Ext(p))]; ok {
		return true, nil
	}
	f, err := fsys.Open(p)
	if err != nil {
		return false, fmt.Errorf("failed to open template file %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("failed to read template file %s: %w", p, err)
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}
