// Demonstrates using the scaffolding packages programmatically, without
// the CLI front end.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-go-golems/pyproject-generator/pkg/emit"
	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templates"
)

func main() {
	project, err := resolver.Resolve(resolver.Request{
		Name:        "Demo App",
		Description: "A scaffolded demo project",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		Github:      "janedoe",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve failed: %v\n", err)
		os.Exit(1)
	}

	spec, err := templates.Builtin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load builtin skeleton: %v\n", err)
		os.Exit(1)
	}
	m, err := project.SubstitutionMap(spec.Tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build substitution map: %v\n", err)
		os.Exit(1)
	}

	report, err := emit.New(spec, m).Emit(context.Background(), project.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emission failed: %v\n", err)
		for _, w := range report.Written {
			fmt.Fprintf(os.Stderr, "  written before failure: %s\n", w)
		}
		os.Exit(1)
	}

	fmt.Printf("generated %s: %d files, %d directories\n", report.Target, len(report.Written), len(report.Dirs))
}
