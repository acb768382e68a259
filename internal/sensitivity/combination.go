package sensitivity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Assignment is a single component value inside a Combination.
type Assignment struct {
	Component Component
	Value     float64
}

// Combination is one point of a scenario's sweep space. Assignments are kept
// in sweep declaration order and are never modified after generation.
type Combination []Assignment

// Value returns the value assigned to the component, if any.
func (c Combination) Value(component Component) (float64, bool) {
	for _, a := range c {
		if a.Component == component {
			return a.Value, true
		}
	}
	return 0, false
}

// String renders the combination as "component=value" pairs.
func (c Combination) String() string {
	parts := make([]string, 0, len(c))
	for _, a := range c {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Component, formatValue(a.Value)))
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON encodes the combination as a JSON object keyed by component,
// preserving sweep order.
func (c Combination) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(a.Component))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(formatValue(a.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into a Combination, keeping key order.
func (c *Combination) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("combination: invalid JSON")
	}
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*c = nil
		return nil
	}
	if !parsed.IsObject() {
		return errors.New("combination: expected a JSON object")
	}

	var out Combination
	var err error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = fmt.Errorf("combination: value for '%s' is not a number", key.String())
			return false
		}
		out = append(out, Assignment{Component: Component(key.String()), Value: value.Float()})
		return true
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
