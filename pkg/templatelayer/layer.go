package templatelayer

import (
	"fmt"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/pyproject-generator/pkg/templates"
)

const TemplateLayerSlug = "template"

type TemplateSettings struct {
	TemplateRoot string   `glazed.parameter:"template-root"`
	Exclude      []string `glazed.parameter:"exclude"`
}

// NewTemplateLayer defines a reusable parameter layer for selecting the
// template tree and its exclusion patterns.
func NewTemplateLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		TemplateLayerSlug,
		"Template tree settings",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"template-root",
				parameters.ParameterTypeString,
				parameters.WithHelp("Template directory (default: builtin Python skeleton)"),
				parameters.WithDefault(""),
			),
			parameters.NewParameterDefinition(
				"exclude",
				parameters.ParameterTypeStringList,
				parameters.WithHelp("Extra exclusion patterns (doublestar globs)"),
			),
		),
	)
}

// AddTemplateLayerToCommand attaches the layer to a Glazed command description.
func AddTemplateLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewTemplateLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(TemplateLayerSlug, l)
	return c, nil
}

// GetTemplateSettings returns parsed template settings from the ParsedLayers.
func GetTemplateSettings(parsed *glzlayers.ParsedLayers) (*TemplateSettings, error) {
	var s TemplateSettings
	if err := parsed.InitializeStruct(TemplateLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse template settings: %w", err)
	}
	return &s, nil
}

// LoadSpec materializes the template spec selected by the settings: a
// directory on disk when template-root is set, the builtin skeleton
// otherwise. Extra exclusion patterns are appended either way.
func LoadSpec(s *TemplateSettings) (*templates.Spec, error) {
	var spec *templates.Spec
	var err error
	if s.TemplateRoot != "" {
		spec, err = templates.Open(s.TemplateRoot)
	} else {
		spec, err = templates.Builtin()
	}
	if err != nil {
		return nil, err
	}
	return spec.WithExcludes(s.Exclude), nil
}
