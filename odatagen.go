// Package odatagen holds the runtime types referenced by packages
// generated with the go dialect. The generator itself lives in the
// compiler package and the odatagen command.
package odatagen

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// EntityCollection is a page of entities returned by an entity set.
type EntityCollection[T any] struct {
	// Count is the total number of entities when the request asked for it.
	Count *int64 `json:"@count,omitempty"`
	Value []T    `json:"value"`
	// NextLink is the URL of the next page, if any.
	NextLink string `json:"@nextLink,omitempty"`
}

// collectionJSON accepts both the 4.0 "@odata." prefixed control
// information and the 4.01 short form.
type collectionJSON[T any] struct {
	Count         *int64 `json:"@count"`
	ODataCount    *int64 `json:"@odata.count"`
	Value         []T    `json:"value"`
	NextLink      string `json:"@nextLink"`
	ODataNextLink string `json:"@odata.nextLink"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *EntityCollection[T]) UnmarshalJSON(data []byte) error {
	var raw collectionJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("odatagen: decode collection: %w", err)
	}
	c.Count = raw.Count
	if c.Count == nil {
		c.Count = raw.ODataCount
	}
	c.NextLink = raw.NextLink
	if c.NextLink == "" {
		c.NextLink = raw.ODataNextLink
	}
	c.Value = raw.Value
	return nil
}

// HasNext reports whether the service announced another page.
func (c *EntityCollection[T]) HasNext() bool {
	return c.NextLink != ""
}

// First returns the first entity of the page.
func (c *EntityCollection[T]) First() (T, error) {
	var zero T
	if len(c.Value) == 0 {
		return zero, NewNotFoundError(label[T]())
	}
	return c.Value[0], nil
}

// Only returns the single entity of the page.
func (c *EntityCollection[T]) Only() (T, error) {
	var zero T
	switch n := len(c.Value); n {
	case 0:
		return zero, NewNotFoundError(label[T]())
	case 1:
		return c.Value[0], nil
	default:
		return zero, NewNotSingularError(label[T](), n)
	}
}

// label names the entity type in errors.
func label[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
