package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level schema of a settings file. Unknown attributes
// and blocks are decode errors.
type fileRoot struct {
	Folder       *string          `hcl:"folder,optional"`
	Technologies []string         `hcl:"technologies,optional"`
	FXCurrency   *string          `hcl:"fx_currency,optional"`
	Scenarios    []*scenarioBlock `hcl:"scenario,block"`
}

// scenarioBlock is a `scenario "name" { ... }` block.
type scenarioBlock struct {
	Name   string        `hcl:"name,label"`
	Sweeps []*sweepBlock `hcl:"sweep,block"`
}

// sweepBlock is a `sweep "name" { ... }` block. Values is kept as an
// expression so null entries survive decoding.
type sweepBlock struct {
	Name      string         `hcl:"name,label"`
	Component string         `hcl:"component"`
	Type      string         `hcl:"type"`
	Values    hcl.Expression `hcl:"values,optional"`
}
