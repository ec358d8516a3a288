package templates

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Export writes the builtin skeleton verbatim into target, manifest
// included, so it can be customized and used via --template-root. The
// target must not exist or must be an empty directory.
func Export(target string) error {
	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("export target %s already exists", target)
		}
		children, err := os.ReadDir(target)
		if err != nil {
			return fmt.Errorf("failed to read export target %s: %w", target, err)
		}
		if len(children) > 0 {
			return fmt.Errorf("export target %s is not empty", target)
		}
	}

	sub, err := fs.Sub(skeletonFS, "skeleton")
	if err != nil {
		return fmt.Errorf("failed to open builtin skeleton: %w", err)
	}
	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk builtin skeleton at %s: %w", p, err)
		}
		dest := filepath.Join(target, filepath.FromSlash(p))
		if d.IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dest, err)
			}
			return nil
		}
		data, err := fs.ReadFile(sub, p)
		if err != nil {
			return fmt.Errorf("failed to read skeleton file %s: %w", p, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		return nil
	})
}
