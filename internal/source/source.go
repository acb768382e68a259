// Package source produces the base inputs of a run, either from a collection
// file or from the project API, and derives design-option variants from them.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

// Source yields the base inputs a run is built from.
type Source interface {
	BaseInputs(ctx context.Context, settings *sensitivity.Settings) (*model.BaseInputs, error)
}

// FileSource reads a base-input collection previously written as JSON.
type FileSource struct {
	Path string
}

// BaseInputs implements Source. Projects whose technology is not in the
// settings' allow-list are dropped.
func (s FileSource) BaseInputs(ctx context.Context, settings *sensitivity.Settings) (*model.BaseInputs, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read base inputs: %w", err)
	}
	var all model.BaseInputs
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode base inputs '%s': %w", s.Path, err)
	}

	out := model.NewCollection[model.BaseInput]()
	for _, base := range all.Items() {
		if !settings.AllowsTechnology(base.Technology) {
			logger.Debug("Technology not selected, skipping project",
				"project_id", base.ProjectID, "technology", base.Technology)
			continue
		}
		out.Add(base)
	}
	logger.Info("Loaded base inputs", "path", s.Path, "count", out.Len(), "skipped", all.Len()-out.Len())
	return out, nil
}
