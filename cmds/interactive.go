package cmds

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"

	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

type InteractiveCommand struct{ *gcmds.CommandDescription }

func NewInteractiveCommand() (*InteractiveCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"interactive",
		gcmds.WithShort("Generate a new project with interactive prompts"),
		gcmds.WithFlags(projectParameterDefinitions(false)...),
		gcmds.WithLayersList(layer),
	)
	_, err = templatelayer.AddTemplateLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &InteractiveCommand{cd}, nil
}

func (c *InteractiveCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	ps := &ProjectSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, ps); err != nil {
		return err
	}
	ts, err := templatelayer.GetTemplateSettings(parsed)
	if err != nil {
		return err
	}

	req, err := promptForRequest(ps)
	if err != nil {
		return err
	}

	project, err := resolver.Resolve(req)
	if err != nil {
		return err
	}
	confirm := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Generate project %q (package %s) into %s?", project.Name, project.PackageName, project.OutputDir),
		Default: true,
	}
	if err := survey.AskOne(prompt, &confirm); err != nil {
		return err
	}
	if !confirm {
		fmt.Println("Canceled.")
		return nil
	}

	return generateProject(ctx, req, ts, false)
}

// promptForRequest fills in every answer the flags left empty. A flag that
// was provided is not prompted for again.
func promptForRequest(ps *ProjectSettings) (resolver.Request, error) {
	req := ps.Request()

	if req.Name == "" {
		err := survey.AskOne(
			&survey.Input{Message: "Project name:"},
			&req.Name,
			survey.WithValidator(survey.Required),
			survey.WithValidator(validProjectName),
		)
		if err != nil {
			return req, err
		}
	}
	if req.Description == "" {
		if err := survey.AskOne(&survey.Input{Message: "Description:"}, &req.Description); err != nil {
			return req, err
		}
	}
	if req.Author == "" {
		if err := survey.AskOne(&survey.Input{Message: "Author name:"}, &req.Author); err != nil {
			return req, err
		}
	}
	if req.Email == "" {
		if err := survey.AskOne(&survey.Input{Message: "Author email:"}, &req.Email); err != nil {
			return req, err
		}
	}
	if req.Github == "" {
		if err := survey.AskOne(&survey.Input{Message: "GitHub handle (optional):"}, &req.Github); err != nil {
			return req, err
		}
	}
	if req.OutputDir == "" {
		project, err := resolver.Resolve(req)
		if err != nil {
			return req, err
		}
		input := &survey.Input{Message: "Output directory:", Default: project.Slug}
		if err := survey.AskOne(input, &req.OutputDir); err != nil {
			return req, err
		}
	}
	return req, nil
}

func validProjectName(ans interface{}) error {
	name, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a string")
	}
	_, err := resolver.Resolve(resolver.Request{Name: name})
	return err
}

var _ gcmds.BareCommand = &InteractiveCommand{}
