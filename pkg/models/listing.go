package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ListingKind tags which shape a Listing was decoded from.
type ListingKind int

const (
	// Collection holds zero or more items, with page metadata when the
	// backend paginated the result.
	Collection ListingKind = iota
	// Single holds exactly one item, returned when the query selected one record by id.
	Single
)

func (k ListingKind) String() string {
	switch k {
	case Collection:
		return "collection"
	case Single:
		return "single"
	default:
		return fmt.Sprintf("ListingKind(%d)", int(k))
	}
}

// Listing is the response of endpoints that serve both list and
// single-record queries (accounts, NVRs). The backend may answer with a bare
// array, a {items, page} envelope or one object; UnmarshalJSON resolves the
// shape once so callers switch on Kind instead of probing fields.
type Listing[T any] struct {
	Kind  ListingKind
	Items []T
	Page  *PageMeta
	Item  *T
}

// NewCollection builds a Collection listing.
func NewCollection[T any](items []T, page *PageMeta) Listing[T] {
	return Listing[T]{Kind: Collection, Items: items, Page: page}
}

// NewSingle builds a Single listing.
func NewSingle[T any](item T) Listing[T] {
	return Listing[T]{Kind: Single, Item: &item}
}

// Flatten returns the listing as a flat slice: the items of a collection,
// or a one-element slice for a single record.
func (l Listing[T]) Flatten() []T {
	if l.Kind == Single {
		if l.Item == nil {
			return []T{}
		}
		return []T{*l.Item}
	}
	if l.Items == nil {
		return []T{}
	}
	return l.Items
}

// Total is the server-side total when known, otherwise the flattened length.
func (l Listing[T]) Total() int {
	if l.Kind == Collection && l.Page != nil {
		return l.Page.Total
	}
	return len(l.Flatten())
}

func (l *Listing[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = NewCollection[T](nil, nil)
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode listing array: %w", err)
		}
		*l = NewCollection(items, nil)
		return nil
	case '{':
		var probe struct {
			Items json.RawMessage `json:"items"`
			Page  *PageMeta       `json:"page"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return fmt.Errorf("decode listing object: %w", err)
		}
		if probe.Items != nil {
			var items []T
			if err := json.Unmarshal(probe.Items, &items); err != nil {
				return fmt.Errorf("decode listing items: %w", err)
			}
			*l = NewCollection(items, probe.Page)
			return nil
		}

		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return fmt.Errorf("decode listing item: %w", err)
		}
		*l = NewSingle(item)
		return nil
	default:
		return fmt.Errorf("unexpected listing payload starting with %q", trimmed[0])
	}
}

// MarshalJSON writes the shape the listing was decoded from.
func (l Listing[T]) MarshalJSON() ([]byte, error) {
	if l.Kind == Single {
		return json.Marshal(l.Item)
	}
	if l.Page != nil {
		return json.Marshal(Paginated[T]{Items: l.Flatten(), Page: *l.Page})
	}
	return json.Marshal(l.Flatten())
}
