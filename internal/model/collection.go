package model

import "encoding/json"

// Collection is an append-only list of records, serialised as
// {"assessments": [...]}.
type Collection[T any] struct {
	items []T
}

// NewCollection creates a collection seeded with items.
func NewCollection[T any](items ...T) *Collection[T] {
	c := &Collection[T]{}
	c.Add(items...)
	return c
}

// Add appends records.
func (c *Collection[T]) Add(items ...T) {
	c.items = append(c.items, items...)
}

// Items returns a copy of the records in insertion order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

type collectionJSON[T any] struct {
	Assessments []T `json:"assessments"`
}

// MarshalJSON implements json.Marshaler.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(collectionJSON[T]{Assessments: items})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	var raw collectionJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.items = raw.Assessments
	return nil
}

// BaseInputs is the collection read from project data sources.
type BaseInputs = Collection[BaseInput]

// Results is the collection of variant outcomes.
type Results = Collection[VariantResult]
