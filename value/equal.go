package value

// Equal implements the language's == operator: total over all value
// pairs (§4.5). Same-kind scalars compare by their native equality;
// Int and Float cross-compare numerically (chosen for consistency with
// the arithmetic promotion rule — see DESIGN.md's Open Question
// decision), and only when the Int converts to float64 exactly, the same
// rule Dict's key normalization uses (see normalizeKey); Array, Dict and Function compare by handle identity; every
// other cross-kind pairing is unequal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok

	case Bool:
		y, ok := b.(Bool)
		return ok && x == y

	case Byte:
		y, ok := b.(Byte)
		return ok && x == y

	case String:
		y, ok := b.(String)
		return ok && x == y

	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			f := float64(x)
			return f == float64(y) && Int(int64(f)) == x
		default:
			return false
		}

	case Float:
		switch y := b.(type) {
		case Float:
			return x == y
		case Int:
			f := float64(y)
			return f == float64(x) && Int(int64(f)) == y
		default:
			return false
		}

	case *Array:
		y, ok := b.(*Array)
		return ok && x == y

	case *Dict:
		y, ok := b.(*Dict)
		return ok && x == y

	case *UserFn:
		y, ok := b.(*UserFn)
		return ok && x == y

	case *HostFn:
		y, ok := b.(*HostFn)
		return ok && x == y

	default:
		return false
	}
}
