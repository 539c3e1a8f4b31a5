package value

import "fmt"

// Array is a shared, growable sequence of Value. Assignment copies the
// handle, not the backing slice: two variables holding the same Array
// observe each other's mutations.
type Array struct {
	elems []Value
}

// NewArray wraps elems as a fresh shared Array. The caller must not
// retain elems for direct mutation afterward.
func NewArray(elems []Value) *Array {
	if elems == nil {
		elems = []Value{}
	}
	return &Array{elems: elems}
}

func (a *Array) Kind() Kind { return KindArray }

func (a *Array) String() string { return fmt.Sprintf("array(len=%d)", len(a.elems)) }

func (a *Array) Len() int { return len(a.elems) }

// Get returns the element at i, or ok=false when i is out of
// [0, Len()) — including negative indices.
func (a *Array) Get(i int64) (Value, bool) {
	if i < 0 || i >= int64(len(a.elems)) {
		return nil, false
	}
	return a.elems[i], true
}

// Set overwrites the element at i, or returns ok=false when i is out of
// range. It never grows the array; out-of-range writes are the caller's
// responsibility to fault on (see interp's IndexOutOfBounds handling).
func (a *Array) Set(i int64, v Value) bool {
	if i < 0 || i >= int64(len(a.elems)) {
		return false
	}
	a.elems[i] = v
	return true
}

// Push appends v, growing the array. Exposed for host functions (e.g. a
// standard-library "push" builtin); not used by the core evaluator
// itself, which never grows arrays on its own.
func (a *Array) Push(v Value) { a.elems = append(a.elems, v) }

// dictEntry keeps the original key Value alongside its normalized form,
// so iteration (e.g. a "keys" host function) can hand back the key the
// caller originally inserted rather than its internal representation.
type dictEntry struct {
	key Value
	val Value
}

// numKey is the normalized map key shared by Int and Float, so that
// Int(1) and Float(1.0) address the same dict entry — consistent with
// the equality used by the == operator (see Equal).
type numKey struct{ f float64 }

// Dict is a shared mapping from Value keys to Value values. Any Value may
// be used as a key; keys are compared with the same equality as the ==
// operator, and hashing agrees with that equality.
type Dict struct {
	entries map[any]dictEntry
}

// NewDict returns an empty shared Dict.
func NewDict() *Dict {
	return &Dict{entries: map[any]dictEntry{}}
}

func (d *Dict) Kind() Kind { return KindDict }

func (d *Dict) String() string { return fmt.Sprintf("dict(len=%d)", len(d.entries)) }

func (d *Dict) Len() int { return len(d.entries) }

// Get looks up key using == equality (see Equal / normalizeKey).
func (d *Dict) Get(key Value) (Value, bool) {
	e, ok := d.entries[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Set inserts or overwrites the entry for key.
func (d *Dict) Set(key, val Value) {
	d.entries[normalizeKey(key)] = dictEntry{key: key, val: val}
}

// Keys returns the dict's keys in unspecified order, in their original
// form (not the normalized key used internally).
func (d *Dict) Keys() []Value {
	keys := make([]Value, 0, len(d.entries))
	for _, e := range d.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// normalizeKey maps a Value onto a Go-comparable key consistent with
// Equal: Float always normalizes to numKey, and Int joins that same
// bucket only when its value round-trips exactly through float64 —
// otherwise two distinct int64 keys beyond float64's 53-bit mantissa
// could collapse onto the same numKey despite Equal(Int, Int) still
// telling them apart (exact int64 comparison), which would make hashing
// disagree with equality. An Int that isn't exactly representable keys
// on its own Int value instead, where Go's native comparison is exact.
// The reference kinds (Array, Dict, Function) map to their own pointer,
// giving handle-identity semantics for free.
func normalizeKey(v Value) any {
	switch x := v.(type) {
	case Nil:
		return Nil{}
	case Bool:
		return x
	case Byte:
		return x
	case String:
		return x
	case Int:
		f := float64(x)
		if Int(int64(f)) == x {
			return numKey{f: f}
		}
		return x
	case Float:
		return numKey{f: float64(x)}
	default:
		// *Array, *Dict, *UserFn, *HostFn: already comparable pointers,
		// giving the handle-identity equality §4.5 requires.
		return v
	}
}
