package subst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMap(t *testing.T, entries []Entry) Map {
	t.Helper()
	m, err := NewMap(entries)
	require.NoError(t, err)
	return m
}

func TestNewMapOrdersLongestTokenFirst(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "proj", Value: "short"},
		{Token: "project_name", Value: "long"},
	})
	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "project_name", entries[0].Token)
	assert.Equal(t, "proj", entries[1].Token)
}

func TestNewMapRejectsDuplicates(t *testing.T) {
	_, err := NewMap([]Entry{
		{Token: "{{a}}", Value: "x"},
		{Token: "{{a}}", Value: "y"},
	})
	require.Error(t, err)
}

func TestNewMapRejectsEmptyToken(t *testing.T) {
	_, err := NewMap([]Entry{{Token: "", Value: "x"}})
	require.Error(t, err)
}

func TestApplyReplacesAllOccurrences(t *testing.T) {
	m := mustMap(t, []Entry{{Token: "{{name}}", Value: "My App"}})
	out := Apply([]byte("# {{name}}\n{{name}} is great\n"), m)
	assert.Equal(t, "# My App\nMy App is great\n", string(out))
}

func TestApplyPrefixTokenDoesNotShadowLongerToken(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "placeholder", Value: "WRONG"},
		{Token: "placeholder_pkg", Value: "my_pkg"},
	})
	out := Apply([]byte("import placeholder_pkg"), m)
	assert.Equal(t, "import my_pkg", string(out))
}

func TestApplyReplacedSpanIsNotRescanned(t *testing.T) {
	// replacement value contains another token; a naive sequential
	// strings.Replace would cascade
	m := mustMap(t, []Entry{
		{Token: "{{a}}", Value: "{{b}}"},
		{Token: "{{b}}", Value: "boom"},
	})
	out := Apply([]byte("x {{a}} y {{b}}"), m)
	assert.Equal(t, "x {{b}} y boom", string(out))
}

func TestApplyIsIdempotentOnTokenFreeContent(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "{{project_name}}", Value: "My Cool App"},
		{Token: "{{package_name}}", Value: "my_cool_app"},
	})
	once := Apply([]byte("name = \"{{project_name}}\"\npkg = {{package_name}}\n"), m)
	twice := Apply(once, m)
	assert.Equal(t, string(once), string(twice))
}

func TestApplyLeavesUnknownTokensAlone(t *testing.T) {
	m := mustMap(t, []Entry{{Token: "{{known}}", Value: "v"}})
	in := "{{ matrix.python-version }} {{unknown}}"
	assert.Equal(t, in, string(Apply([]byte(in), m)))
}

func TestRenamePathSubstitutesEachSegment(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "{{project_name}}", Value: "Foo Bar", PathValue: "foo_bar"},
	})
	out, err := RenamePath("docs/{{project_name}}/index.md", m)
	require.NoError(t, err)
	assert.Equal(t, "docs/foo_bar/index.md", out)
}

func TestRenamePathUsesPathValue(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "placeholder_pkg", Value: "ignored", PathValue: "my_cool_app"},
	})
	out, err := RenamePath("src/placeholder_pkg/core.py", m)
	require.NoError(t, err)
	assert.Equal(t, "src/my_cool_app/core.py", out)
}

func TestRenamePathRejectsSeparatorInReplacement(t *testing.T) {
	m := mustMap(t, []Entry{
		{Token: "{{github_url}}", Value: "https://github.com/jane/app", PathValue: "https://github.com/jane/app"},
	})
	_, err := RenamePath("docs/{{github_url}}.md", m)
	require.Error(t, err)
	var pathErr *InvalidPathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, "{{github_url}}", pathErr.Token)
}

func TestRenamePathNeverMatchesAcrossSeparator(t *testing.T) {
	// token "a/b" spans a separator and must not match the joined path
	m := mustMap(t, []Entry{{Token: "a/b", Value: "X", PathValue: "X"}})
	out, err := RenamePath("a/b", m)
	require.NoError(t, err)
	assert.Equal(t, "a/b", out)
}
