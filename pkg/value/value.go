// Package value defines the dynamically-typed tree that the confyaml parser
// produces. It plays the role Shape's ast package plays for shape-yaml: a
// small, dependency-free representation that both the parser and its
// consumers share.
//
// Unlike a Go map[string]interface{}, a Mapping preserves insertion order and
// keeps its keys unique (setting an existing key replaces its value in
// place), because YAML mapping order and key uniqueness are observable
// (merge keys, for instance, depend on it).
package value

import (
	"fmt"
	"math"
)

// Kind identifies which case of the tagged Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindTimestamp
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding exactly one YAML scalar or collection.
// The zero Value is Null.
type Value struct {
	kind      Kind
	boolVal   bool
	intVal    int64
	floatVal  float64
	timestamp int64 // seconds since epoch
	strVal    string
	seq       []Value
	mapping   *Mapping
}

// Pair is one key/value entry of a Mapping, in the order it was inserted.
type Pair struct {
	Key   Value
	Value Value
}

// Mapping is an ordered list of key/value Pairs with unique keys. Keys are
// compared by identity(): their Kind plus a canonical string form of their
// evaluated representation.
type Mapping struct {
	pairs []Pair
	index map[string]int // evaluated-key identity -> pairs index
}

// NewMapping returns an empty, ready-to-use Mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// identity produces the comparison key used for mapping-key uniqueness: the
// Kind plus a canonical string form, so Int(1) and String("1") are distinct
// but two evaluations of the plain scalar "1" collide as required.
func identity(v Value) string {
	return fmt.Sprintf("%d:%s", v.kind, v.canonicalString())
}

func (v Value) canonicalString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.intVal)
	case KindFloat:
		return fmt.Sprintf("%g", v.floatVal)
	case KindTimestamp:
		return fmt.Sprintf("%d", v.timestamp)
	case KindString:
		return v.strVal
	default:
		// The parser only ever uses string keys. For a sequence or mapping
		// this falls back to the address of a per-call copy of v, so
		// identity() never panics but such a key matches no other key.
		return fmt.Sprintf("%p", &v)
	}
}

// Set inserts or replaces the pair for key. A pre-existing key is replaced in
// place, preserving its original position: the new value wins, the first
// writer's position sticks. Merge-in-place (`<<: *name`) relies on this.
func (m *Mapping) Set(key, val Value) {
	id := identity(key)
	if i, ok := m.index[id]; ok {
		m.pairs[i].Value = val
		return
	}
	m.index[id] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: val})
}

// SetIfAbsent inserts the pair only when key is not already present. It
// returns true when the insertion happened. Used by merge-key processing,
// where "existing keys winning" means a later writer must not clobber one
// already set.
func (m *Mapping) SetIfAbsent(key, val Value) bool {
	id := identity(key)
	if _, ok := m.index[id]; ok {
		return false
	}
	m.index[id] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: val})
	return true
}

// Get looks up the value for key.
func (m *Mapping) Get(key Value) (Value, bool) {
	if i, ok := m.index[identity(key)]; ok {
		return m.pairs[i].Value, true
	}
	return Value{}, false
}

// Pairs returns the mapping's entries in insertion order. The returned slice
// must not be mutated by callers.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

// Len returns the number of pairs.
func (m *Mapping) Len() int {
	return len(m.pairs)
}

// Constructors.

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

func Int(i int64) Value { return Value{kind: KindInt, intVal: i} }

func Float(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// Timestamp stores epochSeconds, signed seconds since the Unix epoch.
func Timestamp(epochSeconds int64) Value { return Value{kind: KindTimestamp, timestamp: epochSeconds} }

func String(s string) Value { return Value{kind: KindString, strVal: s} }

func Sequence(items []Value) Value { return Value{kind: KindSequence, seq: items} }

// MappingValue wraps an already-built Mapping as a Value.
func MappingValue(m *Mapping) Value { return Value{kind: KindMapping, mapping: m} }

// Accessors. Bool, Int, Float, TimestampSeconds, Sequence and Mapping each
// panic if called against the wrong Kind; String never panics (it renders
// scalars in canonical form and collections as "<kind>"). This mirrors the
// "ask what you expect" contract idiomatic Go tagged unions use (see
// encoding/json's unexported decodeState for the same shape of contract).

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind != KindBool {
		panic("value: Bool() on non-bool Value")
	}
	return v.boolVal
}

func (v Value) Int() int64 {
	if v.kind != KindInt {
		panic("value: Int() on non-int Value")
	}
	return v.intVal
}

func (v Value) Float() float64 {
	if v.kind != KindFloat {
		panic("value: Float() on non-float Value")
	}
	return v.floatVal
}

func (v Value) TimestampSeconds() int64 {
	if v.kind != KindTimestamp {
		panic("value: TimestampSeconds() on non-timestamp Value")
	}
	return v.timestamp
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.strVal
	case KindNull:
		return ""
	case KindBool:
		return v.canonicalString()
	case KindInt:
		return v.canonicalString()
	case KindFloat:
		return v.canonicalString()
	case KindTimestamp:
		return v.canonicalString()
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

func (v Value) Sequence() []Value {
	if v.kind != KindSequence {
		panic("value: Sequence() on non-sequence Value")
	}
	return v.seq
}

func (v Value) Mapping() *Mapping {
	if v.kind != KindMapping {
		panic("value: Mapping() on non-mapping Value")
	}
	return v.mapping
}

// Equal reports deep structural equality. NaN floats compare unequal to
// themselves, matching IEEE 754 and the spec's "modulo NaN equality" clause.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindFloat:
		if math.IsNaN(a.floatVal) || math.IsNaN(b.floatVal) {
			return false
		}
		return a.floatVal == b.floatVal
	case KindTimestamp:
		return a.timestamp == b.timestamp
	case KindString:
		return a.strVal == b.strVal
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.mapping.Len() != b.mapping.Len() {
			return false
		}
		for _, p := range a.mapping.Pairs() {
			bv, ok := b.mapping.Get(p.Key)
			if !ok || !Equal(p.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
