package cmds

import (
	"context"
	"fmt"
	"os"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/pyproject-generator/pkg/verify"
)

type VerifyCommand struct{ *gcmds.CommandDescription }

type VerifySettings struct {
	Path string `glazed.parameter:"path"`
	Fail bool   `glazed.parameter:"fail-on-findings"`
}

func NewVerifyCommand() (*VerifyCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"verify",
		gcmds.WithShort("Scan a generated project for leftover placeholder tokens"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("path", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("p"), parameters.WithHelp("Generated project directory")),
			parameters.NewParameterDefinition("fail-on-findings", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Exit with an error when leftover tokens are found")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &VerifyCommand{cd}, nil
}

func (c *VerifyCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &VerifySettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	findings, err := verify.Scan(s.Path)
	if err != nil {
		return err
	}

	for _, f := range findings {
		location := "content"
		if f.Line == 0 {
			location = "path"
		}
		row := types.NewRow(
			types.MRP("path", f.Path),
			types.MRP("location", location),
			types.MRP("line", f.Line),
			types.MRP("token", f.Token),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}

	if len(findings) > 0 {
		fmt.Fprintf(os.Stderr, "Found %d leftover token(s) in %s\n", len(findings), s.Path)
		if s.Fail {
			return fmt.Errorf("%d leftover placeholder tokens in %s", len(findings), s.Path)
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &VerifyCommand{}
