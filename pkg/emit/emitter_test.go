package emit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/subst"
	"github.com/go-go-golems/pyproject-generator/pkg/templates"
)

func testSpec(fsys fstest.MapFS, tokens map[string]string) *templates.Spec {
	if tokens == nil {
		tokens = map[string]string{}
	}
	return &templates.Spec{FS: fsys, Exclude: templates.DefaultExcludes(), Tokens: tokens}
}

func mapFor(t *testing.T, req resolver.Request, tokens map[string]string) subst.Map {
	t.Helper()
	p, err := resolver.Resolve(req)
	require.NoError(t, err)
	m, err := p.SubstitutionMap(tokens)
	require.NoError(t, err)
	return m
}

func TestEmitFullScenario(t *testing.T) {
	fsys := fstest.MapFS{
		"pyproject.toml":              {Data: []byte("name = \"{{project_name}}\"\nauthor = \"{{author_name}}\"\n")},
		"src/placeholder_pkg/core.py": {Data: []byte("\"\"\"Core for {{project_name}}.\"\"\"\n")},
		"logo.png":                    {Data: []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01}},
	}
	tokens := map[string]string{"placeholder_pkg": resolver.RolePackageName}
	spec := testSpec(fsys, tokens)
	m := mapFor(t, resolver.Request{Name: "My Cool App", Author: "Jane Doe", Email: "jane@example.com"}, tokens)

	target := filepath.Join(t.TempDir(), "my-cool-app")
	report, err := New(spec, m).Emit(context.Background(), target)
	require.NoError(t, err)

	// package directory renamed
	require.DirExists(t, filepath.Join(target, "src", "my_cool_app"))
	assert.NoDirExists(t, filepath.Join(target, "src", "placeholder_pkg"))

	// token replaced everywhere, no leftovers
	content, err := os.ReadFile(filepath.Join(target, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `name = "My Cool App"`)
	assert.Contains(t, string(content), `author = "Jane Doe"`)
	assert.NotContains(t, string(content), "{{project_name}}")

	core, err := os.ReadFile(filepath.Join(target, "src", "my_cool_app", "core.py"))
	require.NoError(t, err)
	assert.NotContains(t, string(core), "{{")

	// binary copied byte for byte
	logo, err := os.ReadFile(filepath.Join(target, "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01}, logo)

	assert.Len(t, report.Written, 3)
}

func TestEmitRenamesTokenizedPathSegments(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/{{project_name}}/index.md": {Data: []byte("# {{project_name}}\n")},
	}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "Foo Bar"}, nil)

	target := filepath.Join(t.TempDir(), "out")
	_, err := New(spec, m).Emit(context.Background(), target)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(target, "docs", "foo_bar", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Foo Bar\n", string(content))
}

func TestEmitIntoExistingNonEmptyDirectoryFails(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("a")}}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "app"}, nil)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "existing.txt"), []byte("x"), 0o644))

	_, err := New(spec, m).Emit(context.Background(), target)
	var destErr *DestinationExistsError
	require.True(t, errors.As(err, &destErr))

	// nothing was created
	children, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestEmitIntoExistingEmptyDirectorySucceeds(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("a")}}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "app"}, nil)

	target := t.TempDir()
	report, err := New(spec, m).Emit(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, report.Written)
}

func TestEmitSkipsExcludedEntries(t *testing.T) {
	fsys := fstest.MapFS{
		"keep.txt":          {Data: []byte("k")},
		"__pycache__/x.pyc": {Data: []byte{0x00}},
	}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "app"}, nil)

	target := filepath.Join(t.TempDir(), "out")
	report, err := New(spec, m).Emit(context.Background(), target)
	require.NoError(t, err)
	assert.Contains(t, report.Skipped, "__pycache__")
	assert.NoDirExists(t, filepath.Join(target, "__pycache__"))
}

func TestEmitCanceledContextReportsCompletedEntries(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("a")}, "b.txt": {Data: []byte("b")}}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "app"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := filepath.Join(t.TempDir(), "out")
	report, err := New(spec, m).Emit(ctx, target)
	require.Error(t, err)
	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Written)
}

func TestEmitInvalidPathSurfacesBeforeWriting(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/{{github_url}}.md": {Data: []byte("x")},
	}
	spec := testSpec(fsys, nil)
	m := mapFor(t, resolver.Request{Name: "app", Github: "jane"}, nil)

	target := filepath.Join(t.TempDir(), "out")
	_, err := New(spec, m).Emit(context.Background(), target)
	var pathErr *subst.InvalidPathError
	require.True(t, errors.As(err, &pathErr))
	assert.NoDirExists(t, target)
}

func TestEmitPreservesExecutableBit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "run.sh"), []byte("#!/bin/sh\necho hi\n"), 0o755))
	spec, err := templates.Open(root)
	require.NoError(t, err)
	m := mapFor(t, resolver.Request{Name: "app"}, nil)

	target := filepath.Join(t.TempDir(), "out")
	_, err = New(spec, m).Emit(context.Background(), target)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(target, "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestPlanListsDestinations(t *testing.T) {
	fsys := fstest.MapFS{
		"src/placeholder_pkg/a.py": {Data: []byte("x = 1\n")},
	}
	tokens := map[string]string{"placeholder_pkg": resolver.RolePackageName}
	spec := testSpec(fsys, tokens)
	m := mapFor(t, resolver.Request{Name: "My App"}, tokens)

	planned, err := New(spec, m).Plan()
	require.NoError(t, err)

	var found bool
	for _, p := range planned {
		if p.RelPath == "src/placeholder_pkg/a.py" {
			found = true
			assert.Equal(t, "src/my_app/a.py", p.Destination)
		}
		if !p.IsDir && p.Destination != "" {
			assert.False(t, strings.HasPrefix(p.Destination, "/"))
		}
	}
	assert.True(t, found)
}
