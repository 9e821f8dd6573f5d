package config

// LockfileConfig represents the structure of the pants-lock.yaml configuration file.
type LockfileConfig struct {
	Version             string                 `yaml:"version"`
	InterpreterUniverse []string               `yaml:"interpreterUniverse"`
	Resolves            map[string]*ResolveDTO `yaml:"resolves"`
}

// ResolveDTO represents one resolve definition in the configuration.
type ResolveDTO struct {
	Tool                   bool     `yaml:"tool"`
	InterpreterConstraints []string `yaml:"interpreterConstraints"`
	Requirements           []string `yaml:"requirements"`
	Manylinux              *string  `yaml:"manylinux"`
	RequirementConstraints []string `yaml:"requirementConstraints"`
	OnlyBinary             []string `yaml:"onlyBinary"`
	NoBinary               []string `yaml:"noBinary"`
	RegenerateCommand      string   `yaml:"regenerateCommand"`
}
