package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/dashgrid/internal/ctxlog"
	"github.com/vk/dashgrid/internal/dashboard"
	"github.com/vk/dashgrid/internal/schema"
)

// Loader parses dashboard .hcl files into the dashboard model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader returns a ready-to-use Loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses and validates the dashboard definition at path.
func (l *Loader) Load(ctx context.Context, path string) (*dashboard.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing dashboard file.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root schema.Dashboard
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	cfg, err := l.translate(&root)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	logger.Debug("Dashboard loaded.",
		"queries", len(cfg.Queries),
		"panels", len(cfg.Panels),
		"variables", len(cfg.Variables),
	)
	return cfg, nil
}
