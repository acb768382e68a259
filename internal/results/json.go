package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/sweepgrid/internal/model"
)

// Path returns the results file for a run called name inside dir.
func Path(dir, name string) string {
	if name == "" {
		name = "sensitivity"
	}
	return filepath.Join(dir, name+"_results.json")
}

// WriteJSON writes the collection to path, creating parent directories.
func WriteJSON(path string, results *model.Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// LoadJSON reads a collection written by WriteJSON.
func LoadJSON(path string) (*model.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	results := model.NewCollection[model.VariantResult]()
	if err := json.Unmarshal(data, results); err != nil {
		return nil, fmt.Errorf("decode results '%s': %w", path, err)
	}
	return results, nil
}
