package cmds

import (
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
)

// ProjectSettings are the answer flags shared by every command that
// resolves a substitution map.
type ProjectSettings struct {
	Name        string `glazed.parameter:"name"`
	Description string `glazed.parameter:"description"`
	Author      string `glazed.parameter:"author"`
	Email       string `glazed.parameter:"email"`
	Github      string `glazed.parameter:"github"`
	Output      string `glazed.parameter:"output"`
}

func (s *ProjectSettings) Request() resolver.Request {
	return resolver.Request{
		Name:        s.Name,
		Description: s.Description,
		Author:      s.Author,
		Email:       s.Email,
		Github:      s.Github,
		OutputDir:   s.Output,
	}
}

func projectParameterDefinitions(nameRequired bool) []*parameters.ParameterDefinition {
	nameOpts := []parameters.ParameterDefinitionOption{
		parameters.WithShortFlag("n"),
		parameters.WithHelp("Human-readable project name"),
	}
	if nameRequired {
		nameOpts = append(nameOpts, parameters.WithRequired(true))
	}
	return []*parameters.ParameterDefinition{
		parameters.NewParameterDefinition("name", parameters.ParameterTypeString, nameOpts...),
		parameters.NewParameterDefinition("description", parameters.ParameterTypeString, parameters.WithShortFlag("d"), parameters.WithHelp("Short project description")),
		parameters.NewParameterDefinition("author", parameters.ParameterTypeString, parameters.WithHelp("Author name")),
		parameters.NewParameterDefinition("email", parameters.ParameterTypeString, parameters.WithHelp("Author email")),
		parameters.NewParameterDefinition("github", parameters.ParameterTypeString, parameters.WithHelp("GitHub handle (optional)")),
		parameters.NewParameterDefinition("output", parameters.ParameterTypeString, parameters.WithShortFlag("o"), parameters.WithHelp("Output directory (default: ./<project-slug>)")),
	}
}
