package schemaobject

import (
	"regexp"
	"sync"
	"time"
)

// Kind is the normalized, lowercase type tag of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAlias   Kind = "alias"
	KindAny     Kind = "any"
)

var knownKinds = map[Kind]struct{}{
	KindString: {}, KindNumber: {}, KindBoolean: {}, KindDate: {},
	KindArray: {}, KindObject: {}, KindAlias: {}, KindAny: {},
}

// Shape maps field names to raw declarations. It is both the input of Define
// and the inline declaration of a nested object.
type Shape map[string]any

// Field describes one schema field.
//
// A Field literal is a declaration: Type holds whatever the caller used to
// name the type (a Kind, a kind name, a reflect.Type, a base *Field to extend,
// a List, a Shape or a *Type). Normalization produces a new Field with Kind
// set and Type cleared; normalized fields are shared by every instance of a
// Type and must not be modified.
type Field struct {
	Type any
	Kind Kind
	Name string

	// Default is a value, a func() any or a func(*Object) any producer.
	Default any

	// Transform runs before any kind-specific coercion and may rewrite the
	// candidate value.
	Transform func(value, previous any, f *Field) any

	StringTransform  func(value string, previous any, f *Field) string
	NumberTransform  func(value float64, previous any, f *Field) float64
	BooleanTransform func(value bool, previous any, f *Field) bool
	DateTransform    func(value time.Time, previous any, f *Field) time.Time

	// string
	MinLength *int
	MaxLength *int
	Truncate  bool
	Enum      []string
	Pattern   *regexp.Regexp

	// number
	Min *float64
	Max *float64

	ReadOnly  bool
	Invisible bool

	// array
	ItemType any
	Unique   bool

	// object
	ObjectType *Type

	// alias
	Target string

	item *lazyItem
}

// lazyItem resolves ItemType the first time an Array for the field is built.
type lazyItem struct {
	once  sync.Once
	field *Field
	err   error
}

// Item returns the normalized item descriptor of an array field, or nil when
// the field has no item type.
func (f *Field) Item() (*Field, error) {
	if f == nil || f.ItemType == nil {
		return nil, nil
	}
	if f.item == nil {
		return Normalize(f.ItemType, "")
	}
	f.item.once.Do(func() {
		f.item.field, f.item.err = Normalize(f.ItemType, "")
	})
	return f.item.field, f.item.err
}

// IsComposite reports whether values of the field are containers.
func (f *Field) IsComposite() bool { return f.Kind == KindArray || f.Kind == KindObject }

// List declares a sequence of item, the shorthand for
// Field{Type: KindArray, ItemType: item}.
func List(item any) []any { return []any{item} }

// Lazy defers a declaration until it is first needed. It lets an array item
// type refer to the Type that encloses it.
func Lazy(fn func() any) func() any { return fn }

// Length returns a pointer to n for MinLength/MaxLength.
func Length(n int) *int { return &n }

// Bound returns a pointer to f for Min/Max.
func Bound(f float64) *float64 { return &f }
