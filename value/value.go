// Package value implements the evaluation core's tagged value universe:
// Nil, Bool, Int, Float, Byte, String as value-semantics scalars, and
// Array, Dict, Function as shared, reference-semantics handles.
package value

import "fmt"

// Kind tags the dynamic type of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindByte
	KindString
	KindArray
	KindDict
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindByte:
		return "byte"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is implemented by every value the evaluator can produce. Scalars
// implement it by value; Array, Dict and the function kinds implement it
// as a pointer, which is what gives them reference semantics: assignment
// copies the pointer, not the underlying container.
type Value interface {
	Kind() Kind
	String() string
}

// Nil is the sole value of kind KindNil.
type Nil struct{}

func (Nil) Kind() Kind      { return KindNil }
func (Nil) String() string  { return "nil" }

// NilValue is the canonical Nil instance, handed out wherever the
// evaluator needs a default or "no value" placeholder.
var NilValue Value = Nil{}

// Bool is a boolean scalar.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return fmt.Sprintf("%t", bool(b)) }

// Int is a 64-bit signed integer scalar.
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }

// Float is a 64-bit IEEE-754 scalar. Equality between two Floats is by
// bit pattern is not required (see Equal); NaN handling follows Go's
// native float semantics.
type Float float64

func (f Float) Kind() Kind     { return KindFloat }
func (f Float) String() string { return fmt.Sprintf("%g", float64(f)) }

// Byte is an 8-bit unsigned scalar, distinct from Int: a Byte and an Int
// holding the same numeric value are never equal (only Int/Float cross
// numeric equality is defined, see Equal).
type Byte byte

func (b Byte) Kind() Kind     { return KindByte }
func (b Byte) String() string { return fmt.Sprintf("%d", byte(b)) }

// String is an immutable byte sequence; it is not required to be UTF-8.
type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }
