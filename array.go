package schemaobject

import (
	"github.com/reoring/schemaobject/codec"
	"github.com/reoring/schemaobject/internal/engine"
)

// Array is the ordered container backing array fields. Elements inserted with
// Push are coerced against the field's item type and, for unique fields,
// deduplicated against the batch and the existing elements.
type Array struct {
	owner *Object
	field *Field
	item  *Field
	err   error // item type normalization failure
	items []any
}

// NewArray returns an empty Array bound to the array field f. The item type
// of f is normalized here, on first use.
func NewArray(owner *Object, f *Field) *Array {
	if f == nil {
		f = &Field{Kind: KindArray}
	}
	a := &Array{owner: owner, field: f}
	a.item, a.err = f.Item()
	return a
}

// Owner returns the instance the Array belongs to, if any.
func (a *Array) Owner() *Object { return a.owner }

// Field returns the array field descriptor.
func (a *Array) Field() *Field { return a.field }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// At returns the element at index i. It panics if i is out of range.
func (a *Array) At(i int) any { return a.items[i] }

// Values returns a shallow copy of the elements.
func (a *Array) Values() []any {
	out := make([]any, len(a.items))
	copy(out, a.items)
	return out
}

// Contains reports whether v is already an element.
func (a *Array) Contains(v any) bool { return engine.Contains(a.items, v) }

// Clear removes every element.
func (a *Array) Clear() { a.items = a.items[:0] }

// Push coerces and appends values, returning the new length. Values the item
// type rejects are skipped and reported as Issues addressed by their position
// in the call; the remaining values are still appended.
func (a *Array) Push(values ...any) (int, error) {
	var iss Issues
	accepted := values
	if a.item != nil || a.err != nil {
		accepted = make([]any, 0, len(values))
		for i, v := range values {
			cv, err := a.coerce(v)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues(a.field.Name, i, issuesFromErr(a.item, v, err))...)
				continue
			}
			accepted = append(accepted, cv)
		}
	}
	if a.field.Unique {
		accepted = engine.Uniq(accepted, a.items)
	}
	a.items = append(a.items, accepted...)
	if len(iss) > 0 {
		return len(a.items), iss
	}
	return len(a.items), nil
}

func (a *Array) coerce(v any) (any, error) {
	if a.err != nil {
		return nil, a.err
	}
	return typecast(a.owner, v, nil, a.item)
}

// MarshalJSON renders the elements as a JSON array.
func (a *Array) MarshalJSON() ([]byte, error) { return codec.MarshalJSON(a.Values()) }

// MarshalYAML renders the elements as a YAML sequence.
func (a *Array) MarshalYAML() (any, error) { return a.Values(), nil }
