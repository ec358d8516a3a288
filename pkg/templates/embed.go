package templates

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:skeleton
var skeletonFS embed.FS

// Builtin returns the spec for the Python project skeleton shipped with
// this binary.
func Builtin() (*Spec, error) {
	sub, err := fs.Sub(skeletonFS, "skeleton")
	if err != nil {
		return nil, fmt.Errorf("failed to open builtin skeleton: %w", err)
	}
	return Load(sub)
}
