package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RigPath string // hcl file or directory of hcl files

	LogFormat string
	LogLevel  string
	// IncludeStrayNodes also builds owned nodes the root does not reach.
	IncludeStrayNodes bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.RigPath == "" {
		return nil, errors.New("RigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
