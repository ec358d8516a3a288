package cmds

import (
	"context"
	"errors"
	"fmt"
	"os"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/pyproject-generator/pkg/emit"
	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

type NewCommand struct{ *gcmds.CommandDescription }

type NewSettings struct {
	DryRun bool `glazed.parameter:"dry-run"`
}

func NewNewCommand() (*NewCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	flags := projectParameterDefinitions(true)
	flags = append(flags,
		parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("List planned entries instead of writing")),
	)
	cd := gcmds.NewCommandDescription(
		"new",
		gcmds.WithShort("Generate a new project from a template tree"),
		gcmds.WithFlags(flags...),
		gcmds.WithLayersList(layer),
	)
	_, err = templatelayer.AddTemplateLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &NewCommand{cd}, nil
}

func (c *NewCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	ps := &ProjectSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, ps); err != nil {
		return err
	}
	s := &NewSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ts, err := templatelayer.GetTemplateSettings(parsed)
	if err != nil {
		return err
	}

	return generateProject(ctx, ps.Request(), ts, s.DryRun)
}

// generateProject runs the resolve/walk/emit pipeline and prints the
// outcome; shared by the new and interactive commands.
func generateProject(ctx context.Context, req resolver.Request, ts *templatelayer.TemplateSettings, dryRun bool) error {
	spec, err := templatelayer.LoadSpec(ts)
	if err != nil {
		return err
	}
	project, err := resolver.Resolve(req)
	if err != nil {
		return err
	}
	m, err := project.SubstitutionMap(spec.Tokens)
	if err != nil {
		return err
	}

	emitter := emit.New(spec, m)

	if dryRun {
		planned, err := emitter.Plan()
		if err != nil {
			return err
		}
		for _, p := range planned {
			if p.Destination != "" && p.Destination != p.RelPath {
				fmt.Printf("%-10s %s -> %s\n", p.Action, p.RelPath, p.Destination)
			} else {
				fmt.Printf("%-10s %s\n", p.Action, p.RelPath)
			}
		}
		return nil
	}

	report, err := emitter.Emit(ctx, project.OutputDir)
	if err != nil {
		var destErr *emit.DestinationExistsError
		if errors.As(err, &destErr) {
			return err
		}
		if len(report.Written) > 0 || len(report.Dirs) > 0 {
			fmt.Fprintf(os.Stderr, "Emission failed after %d files; partial output left in %s:\n", len(report.Written), report.Target)
			for _, w := range report.Written {
				fmt.Fprintf(os.Stderr, "  %s\n", w)
			}
			fmt.Fprintf(os.Stderr, "Remove the directory and rerun.\n")
		}
		return err
	}

	fmt.Printf("✓ Generated %s (%d files, %d directories)\n", report.Target, len(report.Written), len(report.Dirs))
	fmt.Println()
	fmt.Println("To get started:")
	fmt.Printf("  cd %s\n", report.Target)
	fmt.Println("  make install")
	return nil
}

var _ gcmds.BareCommand = &NewCommand{}
