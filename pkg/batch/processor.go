package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/pyproject-generator/pkg/emit"
	"github.com/go-go-golems/pyproject-generator/pkg/resolver"
	"github.com/go-go-golems/pyproject-generator/pkg/templates"
	"github.com/go-go-golems/pyproject-generator/pkg/templatelayer"
)

// LoadConfig reads and parses a batch YAML config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse batch YAML: %w", err)
	}
	if len(cfg.Projects) == 0 {
		return nil, fmt.Errorf("batch config %s declares no projects", path)
	}
	return &cfg, nil
}

type Processor struct {
	Template *templatelayer.TemplateSettings
}

type ProcessorOptions struct {
	OutputRoot      string
	ContinueOnError bool
	DryRun          bool
}

// Process stamps out every project in the config sequentially, printing
// per-project progress. With ContinueOnError, failures are collected and
// the remaining projects still run.
func (p *Processor) Process(ctx context.Context, cfg *Config, opts ProcessorOptions) error {
	outputRoot := cfg.Defaults.OutputRoot
	if opts.OutputRoot != "" {
		outputRoot = opts.OutputRoot
	}

	spec, err := p.loadSpec(cfg)
	if err != nil {
		return err
	}

	var errs []error
	for i, proj := range cfg.Projects {
		fmt.Printf("[%d/%d] Generating project: %s\n", i+1, len(cfg.Projects), proj.Name)
		log.Debug().Str("project", proj.Name).Msg("batch project start")
		if err := p.processProject(ctx, spec, cfg.Defaults, proj, outputRoot, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Project '%s' failed: %v\n", proj.Name, err)
			errs = append(errs, err)
			if !opts.ContinueOnError {
				return fmt.Errorf("project '%s' failed: %w", proj.Name, err)
			}
		} else if !opts.DryRun {
			fmt.Printf("✓ Project '%s' generated successfully\n", proj.Name)
		}
	}
	if len(errs) > 0 {
		fmt.Printf("\nCompleted with %d errors out of %d projects\n", len(errs), len(cfg.Projects))
		return fmt.Errorf("batch generation completed with %d errors", len(errs))
	}
	fmt.Printf("\n✓ All %d projects generated successfully\n", len(cfg.Projects))
	return nil
}

func (p *Processor) loadSpec(cfg *Config) (*templates.Spec, error) {
	settings := &templatelayer.TemplateSettings{}
	if p.Template != nil {
		*settings = *p.Template
	}
	// config-level template root applies only when the CLI did not set one
	if settings.TemplateRoot == "" {
		settings.TemplateRoot = cfg.Defaults.TemplateRoot
	}
	return templatelayer.LoadSpec(settings)
}

func (p *Processor) processProject(ctx context.Context, spec *templates.Spec, defaults Defaults, proj Project, outputRoot string, opts ProcessorOptions) error {
	req := resolver.Request{
		Name:        proj.Name,
		Description: proj.Description,
		Author:      firstNonEmpty(proj.Author, defaults.Author),
		Email:       firstNonEmpty(proj.Email, defaults.Email),
		Github:      firstNonEmpty(proj.Github, defaults.Github),
		OutputDir:   proj.Output,
	}
	project, err := resolver.Resolve(req)
	if err != nil {
		return err
	}
	m, err := project.SubstitutionMap(spec.Tokens)
	if err != nil {
		return err
	}

	target := project.OutputDir
	if outputRoot != "" {
		target = filepath.Join(outputRoot, target)
	}

	emitter := emit.New(spec, m)
	if opts.DryRun {
		planned, err := emitter.Plan()
		if err != nil {
			return err
		}
		fmt.Printf("  would emit %d entries into %s\n", len(planned), target)
		return nil
	}

	report, err := emitter.Emit(ctx, target)
	if err != nil {
		if len(report.Written) > 0 || len(report.Dirs) > 0 {
			fmt.Fprintf(os.Stderr, "  partial output left in %s (%d files written before failure)\n", target, len(report.Written))
		}
		return err
	}
	log.Debug().Str("project", proj.Name).Int("files", len(report.Written)).Str("target", target).Msg("batch project done")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
