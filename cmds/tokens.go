package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

type TokensCommand struct{ *gcmds.CommandDescription }

func NewTokensCommand() (*TokensCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"tokens",
		gcmds.WithShort("Show the resolved substitution map for a set of answers"),
		gcmds.WithFlags(projectParameterDefinitions(true)...),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = templatelayer.AddTemplateLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &TokensCommand{cd}, nil
}

func (c *TokensCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	ps := &ProjectSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, ps); err != nil {
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

	for _, e := range m.Entries() {
		source := "builtin"
		if _, ok := spec.Tokens[e.Token]; ok {
			source = "manifest"
		}
		row := types.NewRow(
			types.MRP("token", e.Token),
			types.MRP("value", e.Value),
			types.MRP("path_value", e.PathValue),
			types.MRP("source", source),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &TokensCommand{}
