package verify

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/pyproject-generator/pkg/walk"
)

// Finding is one leftover placeholder token discovered in an emitted tree.
// Line is 1-based for content findings and 0 when the token sits in the
// path itself.
type Finding struct {
	Path  string
	Line  int
	Token string
}

var tokenPattern = regexp.MustCompile(`\{\{\s*[A-Za-z][A-Za-z0-9_]*\s*\}\}`)

// Scan walks an emitted project directory and reports every occurrence of
// placeholder token syntax left in file contents or path names. A fully
// substituted project yields no findings. Binary files are not scanned.
func Scan(root string) ([]Finding, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open project directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsys := os.DirFS(root)
	var findings []Finding

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", p, err)
		}
		if p == "." {
			return nil
		}

		for _, token := range tokenPattern.FindAllString(p, -1) {
			findings = append(findings, Finding{Path: p, Token: token})
		}
		if d.IsDir() {
			return nil
		}

		binary, err := walk.IsBinary(fsys, p)
		if err != nil {
			return err
		}
		if binary {
			log.Debug().Str("path", p).Msg("not scanning binary file")
			return nil
		}

		found, err := scanFile(fsys, p)
		if err != nil {
			return err
		}
		findings = append(findings, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Line < findings[j].Line
	})
	return findings, nil
}

func scanFile(fsys fs.FS, p string) ([]Finding, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()

	var findings []Finding
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if !strings.Contains(text, "{{") {
			continue
		}
		for _, token := range tokenPattern.FindAllString(text, -1) {
			findings = append(findings, Finding{Path: p, Line: line, Token: token})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", p, err)
	}
	return findings, nil
}
