package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ManifestName is the optional per-template configuration file found at the
// template root. It is never copied into a generated project.
const ManifestName = ".scaffold.yaml"

// Manifest is the YAML file a template tree can ship to declare extra
// exclusion patterns and bind literal placeholder tokens to resolver roles.
type Manifest struct {
	// Exclude holds doublestar patterns appended to the default exclusions.
	Exclude []string `yaml:"exclude,omitempty"`
	// Tokens maps literal tokens appearing in the tree to token roles,
	// e.g. "placeholder_pkg: package_name".
	Tokens map[string]string `yaml:"tokens,omitempty"`
}

// Spec is the immutable description of one template tree: where it lives,
// what must never be copied, and which extra tokens it declares.
type Spec struct {
	FS      fs.FS
	Exclude []string
	Tokens  map[string]string
}

// DefaultExcludes returns the patterns that are never copied or
// substituted: version-control metadata, caches, virtual environments and
// build output. Each pattern matches a bare name at any depth.
func DefaultExcludes() []string {
	return []string{
		".git", ".hg", ".svn",
		"__pycache__", "*.pyc", "*.pyo",
		".venv", "venv", ".tox", ".nox",
		".mypy_cache", ".pytest_cache", ".ruff_cache",
		".coverage", "htmlcov",
		"dist", "build", "*.egg-info",
		".DS_Store", ".idea", ".vscode",
	}
}

// Open loads a template spec from a directory on disk, reading the manifest
// when present.
func Open(root string) (*Spec, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open template root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template root %s is not a directory", root)
	}
	return Load(os.DirFS(root))
}

// Load builds a spec over an arbitrary filesystem, merging the manifest
// (when present) with the default exclusions.
func Load(fsys fs.FS) (*Spec, error) {
	spec := &Spec{
		FS:      fsys,
		Exclude: DefaultExcludes(),
		Tokens:  map[string]string{},
	}

	data, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return spec, nil
		}
		return nil, fmt.Errorf("failed to read template manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse template manifest: %w", err)
	}
	for _, pattern := range m.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("template manifest: invalid exclusion pattern %q", pattern)
		}
	}
	spec.Exclude = append(spec.Exclude, m.Exclude...)
	for token, role := range m.Tokens {
		spec.Tokens[token] = role
	}
	return spec, nil
}

// WithExcludes returns a copy of the spec with extra exclusion patterns
// appended. The receiver is not modified.
func (s *Spec) WithExcludes(patterns []string) *Spec {
	if len(patterns) == 0 {
		return s
	}
	out := &Spec{
		FS:      s.FS,
		Exclude: append(append([]string{}, s.Exclude...), patterns...),
		Tokens:  s.Tokens,
	}
	return out
}
