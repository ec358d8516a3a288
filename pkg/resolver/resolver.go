package resolver

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/go-go-golems/pyproject-generator/pkg/subst"
)

// Request carries the fully-populated answers for one generation run.
// Both the flag-driven and the interactive front ends reduce to this
// record before calling the core.
type Request struct {
	Name        string
	Description string
	Author      string
	Email       string
	Github      string
	OutputDir   string
}

// Project holds every derived value referenced by template tokens.
type Project struct {
	Name        string
	Slug        string
	PackageName string
	Description string
	AuthorName  string
	AuthorEmail string
	GithubUser  string
	GithubURL   string
	OutputDir   string
}

// InvalidNameError reports a project name from which no valid package
// identifier can be derived.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: %s", e.Name, e.Reason)
}

// Token roles a template manifest can bind extra literal tokens to.
const (
	RoleProjectName        = "project_name"
	RoleProjectSlug        = "project_slug"
	RolePackageName        = "package_name"
	RoleProjectDescription = "project_description"
	RoleAuthorName         = "author_name"
	RoleAuthorEmail        = "author_email"
	RoleGithubUsername     = "github_username"
	RoleGithubURL          = "github_url"
)

// Resolve derives the full set of substitution values from a request.
// Pure function of its inputs; nothing is touched on disk.
func Resolve(req Request) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &InvalidNameError{Name: req.Name, Reason: "name must not be empty"}
	}

	pkg := identifier(name, '_')
	if pkg == "" {
		return nil, &InvalidNameError{Name: req.Name, Reason: "no letters or digits to build a package identifier from"}
	}
	if pkg[0] >= '0' && pkg[0] <= '9' {
		pkg = "_" + pkg
	}
	slug := identifier(name, '-')

	p := &Project{
		Name:        name,
		Slug:        slug,
		PackageName: pkg,
		Description: strings.TrimSpace(req.Description),
		AuthorName:  strings.TrimSpace(req.Author),
		AuthorEmail: strings.TrimSpace(req.Email),
		GithubUser:  strings.TrimSpace(req.Github),
	}
	if p.GithubUser != "" {
		p.GithubURL = fmt.Sprintf("https://github.com/%s/%s", p.GithubUser, p.Slug)
	}
	p.OutputDir = strings.TrimSpace(req.OutputDir)
	if p.OutputDir == "" {
		p.OutputDir = p.Slug
	}
	return p, nil
}

// ValueForRole maps a manifest role to its content value and its path-safe
// value.
func (p *Project) ValueForRole(role string) (value string, pathValue string, err error) {
	switch role {
	case RoleProjectName:
		return p.Name, p.PackageName, nil
	case RoleProjectSlug:
		return p.Slug, p.Slug, nil
	case RolePackageName:
		return p.PackageName, p.PackageName, nil
	case RoleProjectDescription:
		return p.Description, "", nil
	case RoleAuthorName:
		return p.AuthorName, "", nil
	case RoleAuthorEmail:
		return p.AuthorEmail, "", nil
	case RoleGithubUsername:
		return p.GithubUser, p.GithubUser, nil
	case RoleGithubURL:
		return p.GithubURL, "", nil
	default:
		return "", "", fmt.Errorf("unknown token role %q", role)
	}
}

// SubstitutionMap builds the ordered token map for this project. extra maps
// additional literal tokens (declared by the template manifest) to roles,
// e.g. "placeholder_pkg" -> "package_name".
func (p *Project) SubstitutionMap(extra map[string]string) (subst.Map, error) {
	entries := []subst.Entry{
		{Token: "{{project_name}}", Value: p.Name, PathValue: p.PackageName},
		{Token: "{{project_slug}}", Value: p.Slug},
		{Token: "{{package_name}}", Value: p.PackageName},
		{Token: "{{project_description}}", Value: p.Description},
		{Token: "{{author_name}}", Value: p.AuthorName},
		{Token: "{{author_email}}", Value: p.AuthorEmail},
		{Token: "{{github_username}}", Value: p.GithubUser},
		{Token: "{{github_url}}", Value: p.GithubURL},
	}
	tokens := make([]string, 0, len(extra))
	for token := range extra {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		value, pathValue, err := p.ValueForRole(extra[token])
		if err != nil {
			return subst.Map{}, fmt.Errorf("manifest token %q: %w", token, err)
		}
		entries = append(entries, subst.Entry{Token: token, Value: value, PathValue: pathValue})
	}
	return subst.NewMap(entries)
}

// identifier lower-cases name, strips diacritics, and collapses every run
// of non-alphanumeric characters into sep. Leading and trailing separators
// are trimmed.
func identifier(name string, sep rune) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}
