package app

import (
	"errors"

	"github.com/vk/dashgrid/internal/engine"
)

// Config holds everything an App instance needs to run.
type Config struct {
	DashboardPath string // hcl dashboard definition
	VarsPath      string // optional yaml file with variable bindings

	LogFormat   string
	LogLevel    string
	Concurrency int
	Streaming   bool
	ServePort   int // WebSocket result streaming; 0 disables
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DashboardPath == "" {
		return nil, errors.New("DashboardPath is a required configuration field and cannot be empty")
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = engine.DefaultConcurrency
	}
	return &cfg, nil
}
