package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TaskfilePath string // hcl file or directory of hcl files
	EnvDir       string // root of provisioned environments
	KeepEnvs     bool

	Task    string
	Runtime string
	List    bool

	LogFormat string
	LogLevel  string
	NoColor   bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Task == "" && !cfg.List {
		return nil, errors.New("a task name is required unless listing tasks")
	}
	if cfg.Runtime != "" && cfg.Task == "" {
		return nil, fmt.Errorf("runtime %q given without a task", cfg.Runtime)
	}
	if cfg.EnvDir == "" {
		return nil, errors.New("EnvDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
