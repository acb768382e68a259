package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
)

var (
	// ErrUnknownComponent is returned for a component without a transform.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnsupportedAdjustmentKind is returned when a transform does not
	// accept the requested adjustment kind.
	ErrUnsupportedAdjustmentKind = errors.New("unsupported adjustment kind")
)

// Func applies value to doc and returns the transformed document. It must not
// retain or modify anything reachable from doc.
type Func func(doc document.Document, value float64, kind sensitivity.AdjustmentKind, settings *sensitivity.Settings) (document.Document, error)

// Adjustment is a registered transform and the kinds it accepts.
type Adjustment struct {
	Kinds []sensitivity.AdjustmentKind
	Apply Func
}

// Supports reports whether the adjustment accepts kind.
func (a *Adjustment) Supports(kind sensitivity.AdjustmentKind) bool {
	return slices.Contains(a.Kinds, kind)
}

// Module is the interface that all adjustment modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered transforms for a single application instance.
type Registry struct {
	adjustments map[sensitivity.Component]*Adjustment
}

// New creates a registry and lets every module register itself.
func New(modules ...Module) *Registry {
	r := &Registry{adjustments: make(map[sensitivity.Component]*Adjustment)}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// Register adds a transform for component. Registering a component twice is
// a programming error and panics.
func (r *Registry) Register(component sensitivity.Component, adj *Adjustment) {
	if _, exists := r.adjustments[component]; exists {
		panic(fmt.Sprintf("adjustment for component '%s' already registered", component))
	}
	if adj == nil || adj.Apply == nil {
		panic(fmt.Sprintf("adjustment for component '%s' has no transform", component))
	}
	slog.Debug("Registering adjustment.", "component", component, "kinds", adj.Kinds)
	r.adjustments[component] = adj
}

// Lookup returns the transform registered for component.
func (r *Registry) Lookup(component sensitivity.Component) (*Adjustment, bool) {
	adj, ok := r.adjustments[component]
	return adj, ok
}

// Components returns the registered components sorted by name.
func (r *Registry) Components() []sensitivity.Component {
	out := make([]sensitivity.Component, 0, len(r.adjustments))
	for c := range r.adjustments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Apply runs the transform registered for component.
func (r *Registry) Apply(doc document.Document, component sensitivity.Component, kind sensitivity.AdjustmentKind, value float64, settings *sensitivity.Settings) (document.Document, error) {
	adj, ok := r.adjustments[component]
	if !ok {
		return document.Document{}, fmt.Errorf("%w: '%s'", ErrUnknownComponent, component)
	}
	if !adj.Supports(kind) {
		return document.Document{}, Unsupported(component, kind)
	}
	return adj.Apply(doc, value, kind, settings)
}

// Unsupported builds the error a transform returns for a kind it does not
// handle.
func Unsupported(component sensitivity.Component, kind sensitivity.AdjustmentKind) error {
	return fmt.Errorf("%w: component '%s' does not accept '%s'", ErrUnsupportedAdjustmentKind, component, kind)
}
