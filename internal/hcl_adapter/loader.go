// Package hcl_adapter reads sensitivity settings written in HCL:
//
//	folder       = "uk-pipeline"
//	technologies = ["solar"]
//
//	scenario "rates" {
//	  sweep "discount" {
//	    component = "discount_rate"
//	    type      = "override_value"
//	    values    = [0.06, 0.08]
//	  }
//	}
//
// A path may name a single file or a directory, in which case every .hcl file
// below it is merged in lexical order.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	hclFiles, err := fsutil.FindFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl settings found at %s", path)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Folder != nil {
			model.Folder = *root.Folder
		}
		if root.FXCurrency != nil {
			model.FXCurrency = *root.FXCurrency
		}
		model.Technologies = append(model.Technologies, root.Technologies...)
		for _, s := range root.Scenarios {
			sc, err := l.translateScenario(ctx, s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Scenarios = append(model.Scenarios, sc)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "scenarios", len(model.Scenarios))
	return model, nil
}
