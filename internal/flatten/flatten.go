// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flatten converts arbitrarily nested metadata records into an
// ordered list of path/value pairs. Map descent is written as ".key" and
// sequence indexing as "[i]", so {"exif": {"tags": ["a"]}} flattens to
// the single field "exif.tags[0]".
package flatten

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// ErrUntraversable is returned when a record contains a value that is
// neither a map, a sequence nor a scalar.
var ErrUntraversable = errors.New("record is not traversable")

// Field is one scalar leaf of a flattened record.
type Field struct {
	Path  string
	Value any
}

// Fields is a flattened record in traversal order.
type Fields []Field

// Paths returns the field paths in order.
func (f Fields) Paths() []string {
	out := make([]string, len(f))
	for i, fld := range f {
		out[i] = fld.Path
	}
	return out
}

// Sorted returns a copy ordered by path. Fields sharing a path keep their
// relative order.
func (f Fields) Sorted() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Flatten walks record and returns one Field per scalar leaf. *Object
// keys are visited in insertion order; plain Go maps carry no order, so
// their keys are visited sorted. Empty maps and sequences yield no fields.
func Flatten(record any) (Fields, error) {
	out := Fields{}
	if err := walk("", record, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(prefix string, v any, out *Fields) error {
	switch t := v.(type) {
	case nil, string, bool, json.Number,
		float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, []byte, time.Time:
		*out = append(*out, Field{Path: prefix, Value: t})
		return nil
	case *Object:
		if t == nil {
			return nil
		}
		for _, k := range t.keys {
			if err := walk(joinKey(prefix, k), t.values[k], out); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, k := range sortedKeys(t) {
			if err := walk(joinKey(prefix, k), t[k], out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, elem := range t {
			if err := walk(joinIndex(prefix, i), elem, out); err != nil {
				return err
			}
		}
		return nil
	case encoding.TextMarshaler:
		*out = append(*out, Field{Path: prefix, Value: t})
		return nil
	}
	return walkReflect(prefix, reflect.ValueOf(v), out)
}

// walkReflect handles typed maps, slices and named scalar types.
func walkReflect(prefix string, rv reflect.Value, out *Fields) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			*out = append(*out, Field{Path: prefix, Value: nil})
			return nil
		}
		return walk(prefix, rv.Elem().Interface(), out)
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		*out = append(*out, Field{Path: prefix, Value: rv.Interface()})
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s at %q", ErrUntraversable, rv.Type().Key(), prefix)
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			elem := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			if err := walk(joinKey(prefix, k), elem.Interface(), out); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := walk(joinIndex(prefix, i), rv.Index(i).Interface(), out); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unsupported value of type %s at %q", ErrUntraversable, rv.Type(), prefix)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func joinIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
