package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. Omitted optional attributes decode to zero-width placeholder
// expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

// evalNumbers evaluates a literal list of numbers. Null entries become nil.
func evalNumbers(expr hcl.Expression) ([]*float64, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%s: values must be a list, got %s", expr.Range(), ty.FriendlyName())
	}

	var out []*float64
	for i, el := range val.AsValueSlice() {
		if el.IsNull() {
			out = append(out, nil)
			continue
		}
		if !el.Type().Equals(cty.Number) {
			return nil, fmt.Errorf("%s: value %d: expected a number, got %s", expr.Range(), i, el.Type().FriendlyName())
		}
		f, _ := el.AsBigFloat().Float64()
		out = append(out, &f)
	}
	return out, nil
}
