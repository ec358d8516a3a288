package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func TestScanCleanTreeHasNoFindings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", []byte("# My App\n"))
	writeFile(t, root, "src/my_app/core.py", []byte("x = 1\n"))

	findings, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestScanFindsLeftoverContentTokens(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", []byte("name = \"{{project_name}}\"\ndesc = \"{{ project_description }}\"\n"))

	findings, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, "pyproject.toml", findings[0].Path)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, "{{project_name}}", findings[0].Token)
	assert.Equal(t, 2, findings[1].Line)
}

func TestScanFindsTokensInPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/{{project_name}}/index.md", []byte("hi\n"))

	findings, err := Scan(root)
	require.NoError(t, err)

	var pathFindings int
	for _, f := range findings {
		if f.Line == 0 {
			pathFindings++
			assert.Equal(t, "{{project_name}}", f.Token)
		}
	}
	// the directory and the file beneath it both carry the token
	assert.Equal(t, 2, pathFindings)
}

func TestScanIgnoresBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blob.bin", append([]byte("{{project_name}}"), 0x00))

	findings, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestScanIgnoresTemplateEngineSyntax(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ci.yml", []byte("python-version: ${{ matrix.python-version }}\n"))

	findings, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestScanRejectsMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
