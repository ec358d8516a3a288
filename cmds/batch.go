package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/pyproject-generator/pkg/batch"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

type BatchCommand struct{ *gcmds.CommandDescription }

type BatchSettings struct {
	Config          string `glazed.parameter:"config"`
	OutputRoot      string `glazed.parameter:"output-root"`
	ContinueOnError bool   `glazed.parameter:"continue-on-error"`
	DryRun          bool   `glazed.parameter:"dry-run"`
}

func NewBatchCommand() (*BatchCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"batch",
		gcmds.WithShort("Generate several projects from a YAML config"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("c"), parameters.WithHelp("Path to batch YAML config")),
			parameters.NewParameterDefinition("output-root", parameters.ParameterTypeString, parameters.WithHelp("Directory to generate all projects under (overrides config)")),
			parameters.NewParameterDefinition("continue-on-error", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Keep going when a project fails")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Show what would be generated without writing")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = templatelayer.AddTemplateLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &BatchCommand{cd}, nil
}

func (c *BatchCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &BatchSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ts, err := templatelayer.GetTemplateSettings(parsed)
	if err != nil {
		return err
	}

	cfg, err := batch.LoadConfig(s.Config)
	if err != nil {
		return err
	}

	p := &batch.Processor{Template: ts}
	return p.Process(ctx, cfg, batch.ProcessorOptions{
		OutputRoot:      s.OutputRoot,
		ContinueOnError: s.ContinueOnError,
		DryRun:          s.DryRun,
	})
}

var _ gcmds.BareCommand = &BatchCommand{}
