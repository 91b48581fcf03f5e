package schemaobject

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/reoring/schemaobject/internal/engine"
)

// declVariant is the closed set of declaration shapes accepted by Normalize.
type declVariant int

const (
	declNone       declVariant = iota // nil: any value
	declRawType                       // Kind, kind name or reflect.Type
	declDescriptor                    // Field / *Field
	declSequence                      // []any{Item}
	declShape                         // Shape / map[string]any
	declPrebuilt                      // *Type
	declThunk                         // func() any
	declOther
)

// classify picks the declaration variant of d.
func classify(d any) declVariant {
	switch v := d.(type) {
	case nil:
		return declNone
	case Kind, string, reflect.Type:
		return declRawType
	case Field:
		return declDescriptor
	case *Field:
		if v == nil {
			return declNone
		}
		return declDescriptor
	case Shape, map[string]any:
		return declShape
	case *Type:
		if v == nil {
			return declNone
		}
		return declPrebuilt
	case func() any:
		return declThunk
	}
	if engine.IsSequence(d) {
		return declSequence
	}
	return declOther
}

// Normalize turns a raw declaration into a canonical Field. The declaration
// is never modified; descriptors are copied. A non-empty name is stamped onto
// the result for error attribution.
func Normalize(decl any, name string) (*Field, error) {
	var nf Field
	switch classify(decl) {
	case declDescriptor:
		if p, ok := decl.(*Field); ok {
			nf = *p
		} else {
			nf = decl.(Field)
		}
		extendBase(&nf)
		if nf.Type != nil || nf.Kind == "" {
			var rt Field
			if err := resolveType(nf.Type, &rt); err != nil {
				return nil, fieldErr(name, err)
			}
			// An explicit Kind wins over the one implied by Type.
			if nf.Kind == "" {
				nf.Kind = rt.Kind
			}
			if nf.ItemType == nil {
				nf.ItemType = rt.ItemType
			}
			if nf.ObjectType == nil {
				nf.ObjectType = rt.ObjectType
			}
		}
	default:
		if err := resolveType(decl, &nf); err != nil {
			return nil, fieldErr(name, err)
		}
	}
	nf.Type = nil
	if name != "" {
		nf.Name = name
	}
	if err := finalize(&nf); err != nil {
		return nil, fieldErr(name, err)
	}
	return &nf, nil
}

// extendBase copies attributes of base descriptors named in f.Type onto f
// wherever f leaves them unset, following chains of bases.
func extendBase(f *Field) {
	for {
		var base *Field
		switch b := f.Type.(type) {
		case *Field:
			base = b
		case Field:
			base = &b
		}
		if base == nil {
			return
		}
		dv := reflect.ValueOf(f).Elem()
		bv := reflect.ValueOf(base).Elem()
		for i := 0; i < dv.NumField(); i++ {
			if !dv.Type().Field(i).IsExported() {
				continue
			}
			if fv := dv.Field(i); fv.IsZero() {
				fv.Set(bv.Field(i))
			}
		}
		f.Type = base.Type
	}
}

// resolveType derives Kind (and ItemType/ObjectType) from a raw type declaration.
func resolveType(t any, f *Field) error {
	switch classify(t) {
	case declNone:
		f.Kind = KindAny
	case declRawType:
		switch v := t.(type) {
		case reflect.Type:
			return resolveGoType(v, f)
		case Kind:
			return setKind(f, string(v))
		case string:
			return setKind(f, v)
		}
	case declDescriptor:
		// A descriptor used as a plain type: treat it as a base.
		f.Type = t
		extendBase(f)
		if f.Kind == "" {
			return resolveType(f.Type, f)
		}
	case declSequence:
		f.Kind = KindArray
		if items := engine.Elements(t); len(items) > 0 {
			// Normalized when the field's Array is constructed.
			f.ItemType = items[0]
		}
	case declShape:
		f.Kind = KindObject
		shape := toShape(t)
		if len(shape) > 0 {
			nt, err := Define(shape, Options{})
			if err != nil {
				return err
			}
			f.ObjectType = nt
		}
	case declPrebuilt:
		f.Kind = KindObject
		f.ObjectType = t.(*Type)
	case declThunk:
		return resolveType(t.(func() any)(), f)
	default:
		f.Kind = KindObject
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// resolveGoType maps a Go type to a kind.
func resolveGoType(rt reflect.Type, f *Field) error {
	if rt == nil {
		f.Kind = KindAny
		return nil
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == timeType {
		f.Kind = KindDate
		return nil
	}
	switch rt.Kind() {
	case reflect.String:
		f.Kind = KindString
	case reflect.Bool:
		f.Kind = KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		f.Kind = KindNumber
	case reflect.Slice, reflect.Array:
		f.Kind = KindArray
		f.ItemType = rt.Elem()
	case reflect.Interface:
		f.Kind = KindAny
	default:
		f.Kind = KindObject
	}
	return nil
}

func setKind(f *Field, name string) error {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := knownKinds[k]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	f.Kind = k
	return nil
}

func finalize(f *Field) error {
	f.Kind = Kind(strings.ToLower(string(f.Kind)))
	if _, ok := knownKinds[f.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(f.Kind))
	}
	if f.Kind == KindAlias && f.Target == "" {
		return ErrAliasTarget
	}
	if f.Kind == KindArray {
		f.item = &lazyItem{}
	} else {
		f.item = nil
	}
	return nil
}

func fieldErr(name string, err error) error {
	if name == "" {
		return err
	}
	return fmt.Errorf("field %q: %w", name, err)
}

func toShape(v any) Shape {
	switch s := v.(type) {
	case Shape:
		return s
	case map[string]any:
		return Shape(s)
	}
	return nil
}

// Schema maps field names to normalized descriptors.
type Schema map[string]*Field

// Names returns the field names in ascending order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NormalizeSchema normalizes every declaration of raw into a new Schema.
// raw itself is left untouched; see NormalizeSchemaInPlace.
func NormalizeSchema(raw Shape) (Schema, error) {
	out := make(Schema, len(raw))
	names := make([]string, 0, len(raw))
	for k := range raw {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		f, err := Normalize(raw[name], name)
		if err != nil {
			return nil, err
		}
		out[name] = f
	}
	for _, name := range names {
		f := out[name]
		if f.Kind != KindAlias {
			continue
		}
		if t, ok := out[f.Target]; !ok || t.Kind == KindAlias {
			return nil, fieldErr(name, fmt.Errorf("%w: %q", ErrAliasTarget, f.Target))
		}
	}
	return out, nil
}

// NormalizeSchemaInPlace normalizes raw and writes the canonical *Field of
// every entry back into raw. Callers that inspect their shape after Define
// opt into this explicitly.
func NormalizeSchemaInPlace(raw Shape) error {
	s, err := NormalizeSchema(raw)
	if err != nil {
		return err
	}
	for k, f := range s {
		raw[k] = f
	}
	return nil
}
