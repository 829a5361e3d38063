// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMapping
)

// Value is a closed variant over the JSON value space: null, bool, number,
// string, list, or mapping. State descriptions have no fixed schema, so all
// comparison logic dispatches over this variant instead of reflecting on
// arbitrary Go types. Per prd001-gap-model R1.1.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	list    []Value
	mapping map[string]Value
}

// State is one schemaless state description: named attributes to values.
type State map[string]Value

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a numeric Value. All numbers are float64, matching JSON.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a list Value.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Mapping returns a mapping Value.
func Mapping(m map[string]Value) Value { return Value{kind: KindMapping, mapping: m} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// TypeName returns the wire-level type name, used in gap descriptions and
// type-mismatch detection (R1.2).
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload. Valid only for KindNumber.
func (v Value) AsNumber() float64 { return v.number }

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string { return v.str }

// AsList returns the list payload. Valid only for KindList.
func (v Value) AsList() []Value { return v.list }

// AsMapping returns the mapping payload. Valid only for KindMapping.
func (v Value) AsMapping() map[string]Value { return v.mapping }

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindNumber:
		return v.number == o.number
	case KindString:
		return v.str == o.str
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapping) != len(o.mapping) {
			return false
		}
		for k, vv := range v.mapping {
			ov, ok := o.mapping[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// FromAny converts a decoded JSON/YAML document value into a Value.
// Supported inputs are the types produced by encoding/json and yaml.v3
// when decoding into interface{}.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("converting number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case []any:
		list := make([]Value, 0, len(t))
		for _, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			list = append(list, v)
		}
		return Value{kind: KindList, list: list}, nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Mapping(m), nil
	case map[any]any:
		// yaml.v2-style mappings; keys must be strings.
		m := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("mapping key %v is not a string", k)
			}
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[ks] = v
		}
		return Mapping(m), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", x)
}

// ToAny converts the value back to the interface{} shape used by
// encoding/json and yaml encoders, so states re-serialize losslessly.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.str
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.ToAny()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapping))
		for k, e := range v.mapping {
			out[k] = e.ToAny()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes the underlying variant.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON decodes any JSON value into the variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the underlying variant.
func (v Value) MarshalYAML() (any, error) { return v.ToAny(), nil }

// UnmarshalYAML decodes any YAML value into the variant.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// StateFromAny converts a decoded top-level document into a State. The
// document must be a mapping with string keys.
func StateFromAny(x any) (State, error) {
	v, err := FromAny(x)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindMapping {
		return nil, fmt.Errorf("top-level value must be a mapping, got %s", v.TypeName())
	}
	return State(v.AsMapping()), nil
}

// SortedKeys returns the state's attribute names in lexical order.
// Discovery iterates states in this order so results are deterministic.
func (s State) SortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// canonical writes a deterministic encoding of the value: mapping keys
// sorted, numbers in shortest round-trip form. Used only for fingerprints.
func (v Value) canonical(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		b.WriteString(strconv.FormatFloat(v.number, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindList:
		b.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				b.WriteByte(',')
			}
			e.canonical(b)
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		keys := make([]string, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			v.mapping[k].canonical(b)
		}
		b.WriteByte('}')
	}
}

// Fingerprint returns a stable hex digest of the state's canonical form.
// Identical states always produce identical fingerprints (R1.3).
func (s State) Fingerprint() string {
	var b strings.Builder
	Mapping(map[string]Value(s)).canonical(&b)
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}

// DeriveVoidMapID returns the deterministic id for a (current, goal) pair:
// a sha256 over both canonical states, truncated. Identical inputs always
// reproduce the same id (R1.3).
func DeriveVoidMapID(current, goal State) string {
	var b strings.Builder
	Mapping(map[string]Value(current)).canonical(&b)
	Mapping(map[string]Value(goal)).canonical(&b)
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("void_map_%x", sum[:8])
}
