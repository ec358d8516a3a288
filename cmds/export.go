package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/pyproject-generator/pkg/templates"
)

type ExportCommand struct{ *gcmds.CommandDescription }

type ExportSettings struct {
	Output string `glazed.parameter:"output"`
}

func NewExportCommand() (*ExportCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"export",
		gcmds.WithShort("Write the builtin skeleton to disk for customization"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("output", parameters.ParameterTypeString, parameters.WithDefault("skeleton"), parameters.WithShortFlag("o"), parameters.WithHelp("Directory to export the skeleton into")),
		),
		gcmds.WithLayersList(layer),
	)
	return &ExportCommand{cd}, nil
}

func (c *ExportCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &ExportSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	if err := templates.Export(s.Output); err != nil {
		return err
	}
	fmt.Printf("✓ Exported builtin skeleton to %s\n", s.Output)
	fmt.Printf("Use it with: pyproject-generator new --template-root %s ...\n", s.Output)
	return nil
}

var _ gcmds.BareCommand = &ExportCommand{}
