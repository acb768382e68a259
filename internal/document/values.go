package document

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Attr returns an attribute of an object or map value.
func Attr(v cty.Value, key string) (cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return cty.NilVal, false
	}
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(key) {
			return cty.NilVal, false
		}
		return v.GetAttr(key), true
	case ty.IsMapType():
		k := cty.StringVal(key)
		if !v.HasIndex(k).True() {
			return cty.NilVal, false
		}
		return v.Index(k), true
	}
	return cty.NilVal, false
}

// Float converts a known, non-null number to float64.
func Float(v cty.Value) (float64, bool) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	return f, true
}

// String converts a known, non-null string value.
func String(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.String) {
		return "", false
	}
	return v.AsString(), true
}

// WithAttr returns a copy of the object with key set to val. A null input
// is treated as an empty object.
func WithAttr(obj cty.Value, key string, val cty.Value) (cty.Value, error) {
	if !obj.IsNull() && !isObjectLike(obj) {
		return cty.NilVal, fmt.Errorf("%w: cannot set '%s'", ErrNotObject, key)
	}
	attrs := valueMap(obj)
	attrs[key] = val
	return cty.ObjectVal(attrs), nil
}

// Elements returns the members of a tuple, list or set. Null yields nil.
func Elements(v cty.Value) ([]cty.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, fmt.Errorf("%w: expected a sequence, got %s", ErrFieldType, ty.FriendlyName())
	}
	if v.LengthInt() == 0 {
		return nil, nil
	}
	return v.AsValueSlice(), nil
}

// Append returns a tuple of v's elements followed by items. A null v is an
// empty sequence. Tuples are used so appended elements may differ in shape
// from existing ones.
func Append(v cty.Value, items ...cty.Value) (cty.Value, error) {
	els, err := Elements(v)
	if err != nil {
		return cty.NilVal, err
	}
	out := make([]cty.Value, 0, len(els)+len(items))
	out = append(out, els...)
	out = append(out, items...)
	return cty.TupleVal(out), nil
}

// MapElements applies fn to every member of a sequence and returns the
// results as a tuple. A null input is returned unchanged.
func MapElements(v cty.Value, fn func(i int, el cty.Value) (cty.Value, error)) (cty.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	els, err := Elements(v)
	if err != nil {
		return cty.NilVal, err
	}
	out := make([]cty.Value, len(els))
	for i, el := range els {
		next, err := fn(i, el)
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = next
	}
	return cty.TupleVal(out), nil
}

// MapAttributes applies fn to every attribute of an object or map and
// returns the results as an object. A null input is returned unchanged.
func MapAttributes(v cty.Value, fn func(key string, el cty.Value) (cty.Value, error)) (cty.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	if !isObjectLike(v) {
		return cty.NilVal, fmt.Errorf("%w: got %s", ErrNotObject, v.Type().FriendlyName())
	}
	attrs := valueMap(v)
	for key, el := range attrs {
		next, err := fn(key, el)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s: %w", key, err)
		}
		attrs[key] = next
	}
	return cty.ObjectVal(attrs), nil
}

// Scale multiplies a numeric value by factor.
func Scale(v cty.Value, factor float64) (cty.Value, error) {
	f, ok := Float(v)
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: expected a number", ErrFieldType)
	}
	return Number(f * factor)
}

// Object builds an object value from Go scalars. Supported member types are
// cty.Value, string, bool, int, int64 and float64.
func Object(attrs map[string]any) cty.Value {
	out := make(map[string]cty.Value, len(attrs))
	for k, raw := range attrs {
		switch x := raw.(type) {
		case cty.Value:
			out[k] = x
		case string:
			out[k] = cty.StringVal(x)
		case bool:
			out[k] = cty.BoolVal(x)
		case int:
			out[k] = cty.NumberIntVal(int64(x))
		case int64:
			out[k] = cty.NumberIntVal(x)
		case float64:
			out[k] = cty.NumberFloatVal(x)
		default:
			panic(fmt.Sprintf("document.Object: unsupported type %T for '%s'", raw, k))
		}
	}
	return cty.ObjectVal(out)
}

func isObjectLike(v cty.Value) bool {
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

// valueMap returns a fresh, writable copy of an object's attributes.
func valueMap(v cty.Value) map[string]cty.Value {
	out := make(map[string]cty.Value)
	if v.IsNull() || v.LengthInt() == 0 {
		return out
	}
	for k, el := range v.AsValueMap() {
		out[k] = el
	}
	return out
}

// IsObject reports whether v is a known, non-null object or map.
func IsObject(v cty.Value) bool {
	return !v.IsNull() && v.IsKnown() && isObjectLike(v)
}

// Attributes returns a writable copy of an object's attributes. A null input
// yields an empty map.
func Attributes(v cty.Value) (map[string]cty.Value, error) {
	if !v.IsNull() && !isObjectLike(v) {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.Type().FriendlyName())
	}
	return valueMap(v), nil
}
