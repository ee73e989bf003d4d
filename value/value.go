// Package value defines the typed variable tree templates render against.
package value

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is a tagged union over the types a template may observe. Values are
// immutable once constructed; the List and Map constructors copy their input
// so callers cannot alias the backing storage.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	list []Value
	m    map[string]Value
}

func Num(n float64) Value { return Value{kind: KindNumber, num: n} }

func Int(n int) Value { return Value{kind: KindNumber, num: float64(n)} }

func Str(s string) Value { return Value{kind: KindString, str: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func ListOf(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindList, list: copied}
}

func MapOf(m map[string]Value) Value {
	copied := make(map[string]Value, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return Value{kind: KindMap, m: copied}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns the backing elements. Callers must not mutate the slice.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the backing map. Callers must not mutate it.
func (v Value) AsMap() (map[string]Value, bool) { return v.m, v.kind == KindMap }

// Len reports the element count for lists and maps and the byte length for
// strings. Other kinds have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	case KindString:
		return len(v.str)
	}
	return 0
}

// Truthy reports whether the value is truthy under the engine's falsy set:
// false, 0, the empty string, the empty list, and the empty map are falsy;
// everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.m) > 0
	}
	return false
}

// Format renders the value as interpolation output. Lists join their
// formatted elements with commas; maps join sorted key:value pairs so the
// output is deterministic.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Format()
		}
		return strings.Join(parts, ",")
	case KindMap:
		keys := v.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.m[k].Format()
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// SortedKeys returns map keys in ascending order. Nil for non-maps.
func (v Value) SortedKeys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep structural equality.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindBool:
		return a.b == b.b
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for k, av := range a.m {
			bv, ok := b.m[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
