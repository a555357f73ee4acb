package config

// File represents the structure of the orcdev.yaml configuration file.
// Every field is optional; unset fields keep the fixed default layout.
type File struct {
	Library  *ProjectDTO  `yaml:"library"`
	Server   *ProjectDTO  `yaml:"server"`
	Artifact string       `yaml:"artifact"`
	Publish  string       `yaml:"publish"`
	Frontend *FrontendDTO `yaml:"frontend"`
	Grace    string       `yaml:"grace"`
}

// ProjectDTO describes one buildable project directory.
type ProjectDTO struct {
	Dir string   `yaml:"dir"`
	Cmd []string `yaml:"cmd"`
}

// FrontendDTO describes the supervised front-end watch process.
type FrontendDTO struct {
	Dir    string   `yaml:"dir"`
	Cmd    []string `yaml:"cmd"`
	Marker string   `yaml:"marker"`
}
