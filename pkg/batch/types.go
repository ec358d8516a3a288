package batch

// Config describes a batch generation run: shared defaults plus one entry
// per project to stamp out.
type Config struct {
	Defaults Defaults  `yaml:"defaults,omitempty"`
	Projects []Project `yaml:"projects"`
}

// Defaults are applied to every project that leaves the field empty.
type Defaults struct {
	Author       string `yaml:"author,omitempty"`
	Email        string `yaml:"email,omitempty"`
	Github       string `yaml:"github,omitempty"`
	TemplateRoot string `yaml:"template_root,omitempty"`
	// OutputRoot is prepended to each project's output directory.
	OutputRoot string `yaml:"output_root,omitempty"`
}

// Project is a single generation request inside a batch config.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Email       string `yaml:"email,omitempty"`
	Github      string `yaml:"github,omitempty"`
	Output      string `yaml:"output,omitempty"`
}
