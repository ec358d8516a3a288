package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/pyproject-generator/pkg/cmdutil"
	"github.com/go-go-golems/pyproject-generator/pkg/emit"
	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

type PlanCommand struct{ *gcmds.CommandDescription }

type PlanSettings struct {
	Actions []string `glazed.parameter:"action"`
}

func NewPlanCommand() (*PlanCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	flags := projectParameterDefinitions(true)
	flags = append(flags,
		parameters.NewParameterDefinition("action", parameters.ParameterTypeStringList, parameters.WithHelp("Only show entries with these actions (copy, substitute, skip)")),
	)
	cd := gcmds.NewCommandDescription(
		"plan",
		gcmds.WithShort("Show every template entry with its action and destination, without writing"),
		gcmds.WithFlags(flags...),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = templatelayer.AddTemplateLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &PlanCommand{cd}, nil
}

func (c *PlanCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	ps := &ProjectSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, ps); err != nil {
		return err
	}
	s := &PlanSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	ts, err := templatelayer.GetTemplateSettings(parsed)
	if err != nil {
		return err
	}

	spec, err := templatelayer.LoadSpec(ts)
	if err != nil {
		return err
	}
	project, err := resolver.Resolve(ps.Request())
	if err != nil {
		return err
	}
	m, err := project.SubstitutionMap(spec.Tokens)
	if err != nil {
		return err
	}

	planned, err := emit.New(spec, m).Plan()
	if err != nil {
		return err
	}
	planned = cmdutil.Filter(planned, s.Actions, func(p emit.PlannedEntry) string {
		return p.Action.String()
	})

	for _, p := range planned {
		entryType := "file"
		if p.IsDir {
			entryType = "directory"
		}
		row := types.NewRow(
			types.MRP("path", p.RelPath),
			types.MRP("type", entryType),
			types.MRP("action", p.Action.String()),
			types.MRP("destination", p.Destination),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &PlanCommand{}
