// Package document models the calculation engine input as an immutable typed
// tree. A Document wraps a cty object value; every edit returns a new
// Document and leaves the receiver untouched, so documents derived from the
// same base never share mutable state.
//
// Attribute names are normalized to Unicode NFC by cty, so a JSON key that is
// not in NFC form fails to parse. Engine-input keys are plain ASCII.
package document

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var (
	// ErrEmpty is returned by operations on a zero Document.
	ErrEmpty = errors.New("document is empty")
	// ErrNotObject reports a value that must be an object but is not.
	ErrNotObject = errors.New("value is not an object")
	// ErrFieldMissing reports a path that does not resolve.
	ErrFieldMissing = errors.New("field missing")
	// ErrFieldType reports a path that resolves to a value of the wrong type.
	ErrFieldType = errors.New("field has unexpected type")
)

// Document is an engine-input document.
type Document struct {
	val cty.Value
}

// Parse decodes a JSON object into a Document.
func Parse(data []byte) (Document, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if !ty.IsObjectType() {
		return Document{}, fmt.Errorf("decode document: %w", ErrNotObject)
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return Document{val: val}, nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(data string) Document {
	d, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return d
}

// FromValue wraps an existing cty object value.
func FromValue(v cty.Value) (Document, error) {
	if v.IsNull() || !v.IsKnown() || !isObjectLike(v) {
		return Document{}, ErrNotObject
	}
	return Document{val: v}, nil
}

// Value returns the underlying cty value.
func (d Document) Value() cty.Value { return d.val }

// IsZero reports whether d holds no document.
func (d Document) IsZero() bool { return d.val.IsNull() }

// Equal reports whether both documents hold the same tree.
func (d Document) Equal(other Document) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() == other.IsZero()
	}
	return d.val.RawEquals(other.val)
}

// MarshalJSON encodes the document as a plain JSON object.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return ctyjson.Marshal(d.val, d.val.Type())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Get resolves a path of attribute names.
func (d Document) Get(path ...string) (cty.Value, bool) {
	if d.IsZero() {
		return cty.NilVal, false
	}
	cur := d.val
	for _, key := range path {
		next, ok := Attr(cur, key)
		if !ok {
			return cty.NilVal, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether the path resolves to a non-null value.
func (d Document) Has(path ...string) bool {
	v, ok := d.Get(path...)
	return ok && !v.IsNull()
}

// Number reads a numeric field.
func (d Document) Number(path ...string) (float64, error) {
	v, ok := d.Get(path...)
	if !ok || v.IsNull() {
		return 0, fieldErr(ErrFieldMissing, path)
	}
	f, ok := Float(v)
	if !ok {
		return 0, fieldErr(ErrFieldType, path)
	}
	return f, nil
}

// Set returns a copy of d with the value stored at path. Missing
// intermediate objects are created.
func (d Document) Set(v cty.Value, path ...string) (Document, error) {
	if d.IsZero() {
		return Document{}, ErrEmpty
	}
	if len(path) == 0 {
		return FromValue(v)
	}
	out, err := setPath(d.val, true, path, v)
	if err != nil {
		return Document{}, err
	}
	return Document{val: out}, nil
}

// SetNumber stores a float at path.
func (d Document) SetNumber(f float64, path ...string) (Document, error) {
	v, err := Number(f)
	if err != nil {
		return Document{}, fieldErr(err, path)
	}
	return d.Set(v, path...)
}

// Update replaces the existing value at path with fn's result.
func (d Document) Update(fn func(cty.Value) (cty.Value, error), path ...string) (Document, error) {
	cur, ok := d.Get(path...)
	if !ok {
		return Document{}, fieldErr(ErrFieldMissing, path)
	}
	next, err := fn(cur)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", strings.Join(path, "."), err)
	}
	return d.Set(next, path...)
}

// Delete returns a copy of d without the attribute at path. Deleting a
// missing attribute is not an error.
func (d Document) Delete(path ...string) (Document, error) {
	if d.IsZero() {
		return Document{}, ErrEmpty
	}
	if len(path) == 0 {
		return Document{}, fieldErr(ErrFieldMissing, path)
	}
	parentPath, key := path[:len(path)-1], path[len(path)-1]
	parent, ok := d.Get(parentPath...)
	if !ok || parent.IsNull() {
		return d, nil
	}
	if !isObjectLike(parent) {
		return Document{}, fieldErr(ErrNotObject, parentPath)
	}
	attrs := valueMap(parent)
	if _, exists := attrs[key]; !exists {
		return d, nil
	}
	delete(attrs, key)
	if len(parentPath) == 0 {
		return Document{val: cty.ObjectVal(attrs)}, nil
	}
	return d.Set(cty.ObjectVal(attrs), parentPath...)
}

func setPath(cur cty.Value, exists bool, path []string, v cty.Value) (cty.Value, error) {
	if len(path) == 0 {
		return v, nil
	}
	var attrs map[string]cty.Value
	switch {
	case !exists || cur.IsNull():
		attrs = make(map[string]cty.Value)
	case isObjectLike(cur):
		attrs = valueMap(cur)
	default:
		return cty.NilVal, fmt.Errorf("%w at '%s'", ErrNotObject, path[0])
	}
	child, childExists := attrs[path[0]]
	next, err := setPath(child, childExists, path[1:], v)
	if err != nil {
		return cty.NilVal, err
	}
	attrs[path[0]] = next
	return cty.ObjectVal(attrs), nil
}

func fieldErr(err error, path []string) error {
	return fmt.Errorf("%w: %s", err, strings.Join(path, "."))
}

// Number converts a finite float to a cty number.
func Number(f float64) (cty.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, fmt.Errorf("%w: non-finite number", ErrFieldType)
	}
	return cty.NumberFloatVal(f), nil
}
