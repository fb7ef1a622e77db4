package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/expr"
	"github.com/vk/stepforge/internal/fsutil"
	"github.com/vk/stepforge/internal/schema"
)

// Loader parses pipeline HCL files and translates them into the
// format-agnostic config model.
type Loader struct {
	parser  *hclparse.Parser
	adapter *expr.Adapter
}

// NewLoader creates a new HCL loader with an empty expression adapter.
func NewLoader() *Loader {
	return &Loader{
		parser:  hclparse.NewParser(),
		adapter: expr.NewAdapter(nil),
	}
}

// Adapter returns the expression adapter bound to every file this loader
// has parsed.
func (l *Loader) Adapter() *expr.Adapter {
	return l.adapter
}

// Load reads every .hcl file reachable from the given paths (files or
// directories), parses them, and translates the result into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat pipeline path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("failed to walk pipeline directory %s: %w", path, err)
			}
			filePaths = append(filePaths, found...)
		} else {
			filePaths = append(filePaths, path)
		}
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl pipeline files found in paths", "paths", paths)
	}

	model := &config.Model{Pipeline: &config.Pipeline{}}
	for _, filePath := range filePaths {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		l.adapter.AddSource(filePath, hclFile.Bytes)

		var pipelineConfig schema.PipelineConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &pipelineConfig); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode pipeline file %s: %w", filePath, diags)
		}

		for _, s := range pipelineConfig.Steps {
			step, err := l.translateStep(s, filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to translate step %q in %s: %w", s.Name, filePath, err)
			}
			model.Pipeline.Steps = append(model.Pipeline.Steps, step)
		}
		logger.Debug("Pipeline file loaded.", "file", filePath, "steps", len(pipelineConfig.Steps))
	}

	logger.Info("Pipeline configuration loaded.", "steps_found", len(model.Pipeline.Steps))
	return model, nil
}
