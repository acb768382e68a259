package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/registry"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"gopkg.in/yaml.v3"
)

// AssessmentRef pins the assessment a project's designs were drawn up
// against.
type AssessmentRef struct {
	ProjectID    string `yaml:"project_id"`
	AssessmentID string `yaml:"assessment_id"`
}

// DesignOption is an alternative layout of a project.
type DesignOption struct {
	Name                string   `yaml:"name"`
	InstalledCapacityDC float64  `yaml:"installed_capacity_dc"`
	EnergyYield         float64  `yaml:"energy_yield"`
	LandArea            *float64 `yaml:"land_area,omitempty"`
	InstalledCapacityAC *float64 `yaml:"installed_capacity_ac,omitempty"`
}

// Designs is the content of a design-options file.
type Designs struct {
	ProjectAssessments []AssessmentRef           `yaml:"project_assessments"`
	Options            map[string][]DesignOption `yaml:"designs"`
}

// LoadDesigns reads and validates a design-options YAML file.
func LoadDesigns(path string) (*Designs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read designs: %w", err)
	}
	var d Designs
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode designs '%s': %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("designs '%s': %w", path, err)
	}
	return &d, nil
}

// Validate checks every option has a name and positive capacity and yield.
func (d *Designs) Validate() error {
	var errs []error
	for projectID, options := range d.Options {
		for i, o := range options {
			if o.Name == "" {
				errs = append(errs, fmt.Errorf("project '%s', design %d: name is required", projectID, i))
			}
			if o.InstalledCapacityDC <= 0 || o.EnergyYield <= 0 {
				errs = append(errs, fmt.Errorf("project '%s', design '%s': installed_capacity_dc and energy_yield must be positive", projectID, o.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// ExpandDesigns replaces every base that has design options with one derived
// base per option. Bases without options are dropped. The derived documents
// are built through the registry's override transforms.
func ExpandDesigns(ctx context.Context, reg *registry.Registry, bases *model.BaseInputs, designs *Designs, settings *sensitivity.Settings) (*model.BaseInputs, error) {
	logger := ctxlog.FromContext(ctx)
	out := model.NewCollection[model.BaseInput]()
	for _, base := range bases.Items() {
		options := designs.Options[base.ProjectID]
		if len(options) == 0 {
			logger.Warn("No design options for project, skipping", "project_id", base.ProjectID)
			continue
		}
		for _, option := range options {
			derived, err := applyDesign(reg, base, option, settings)
			if err != nil {
				return nil, fmt.Errorf("project '%s', design '%s': %w", base.ProjectID, option.Name, err)
			}
			out.Add(derived)
		}
	}
	logger.Info("Expanded design options", "bases", bases.Len(), "designs", out.Len())
	return out, nil
}

func applyDesign(reg *registry.Registry, base model.BaseInput, o DesignOption, settings *sensitivity.Settings) (model.BaseInput, error) {
	derived := base
	derived.ProjectName = fmt.Sprintf("%s - Design: %s", base.ProjectName, o.Name)
	if base.EngineInput == nil {
		return derived, nil
	}

	overrides := []struct {
		component sensitivity.Component
		value     *float64
	}{
		{sensitivity.EnergyYield, &o.EnergyYield},
		{sensitivity.InstalledDCCapacity, &o.InstalledCapacityDC},
		{sensitivity.InstalledACCapacity, o.InstalledCapacityAC},
		{sensitivity.LandArea, o.LandArea},
	}

	doc := *base.EngineInput
	for _, ov := range overrides {
		if ov.value == nil {
			continue
		}
		var err error
		doc, err = reg.Apply(doc, ov.component, sensitivity.OverrideValue, *ov.value, settings)
		if err != nil {
			return model.BaseInput{}, fmt.Errorf("component '%s': %w", ov.component, err)
		}
	}
	derived.EngineInput = &doc
	return derived, nil
}
