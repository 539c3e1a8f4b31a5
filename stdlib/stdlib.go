// Package stdlib is a small, real host library for the evaluation
// core: the minimum set of builtins a program needs to do anything
// observable (inspect a container, print, ask a value's kind) without
// the core itself knowing anything about them. It plays the role
// yaegi's interp/stdlib package plays for that interpreter: a concrete
// Exports value built from ordinary Go functions, installed at the
// root slot the runtime driver reserves for it.
package stdlib

import (
	"fmt"
	"io"

	"github.com/389850689/hush/value"
)

// New builds the standard library dict, with out written through by
// print. out must not be nil: print writes to it unconditionally, and a
// nil writer makes that write fail with a Go runtime panic.
func New(out io.Writer) *value.Dict {
	lib := value.NewDict()
	lib.Set(value.String("len"), hostFn("len", lenFn))
	lib.Set(value.String("push"), hostFn("push", pushFn))
	lib.Set(value.String("keys"), hostFn("keys", keysFn))
	lib.Set(value.String("type_of"), hostFn("type_of", typeOfFn))
	lib.Set(value.String("to_string"), hostFn("to_string", toStringFn))
	lib.Set(value.String("print"), hostFn("print", printFn(out)))
	return lib
}

func hostFn(name string, fn func(value.HostFrame) (value.Value, error)) *value.HostFn {
	return &value.HostFn{Name: name, Callable: fn}
}

func arityError(name string, want, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

func typeError(name string, arg int, want string, got value.Value) error {
	return fmt.Errorf("%s: argument %d must be %s, got %s", name, arg, want, got.Kind())
}

// lenFn returns the length of an array, dict or string.
func lenFn(f value.HostFrame) (value.Value, error) {
	if f.ArgCount() != 1 {
		return nil, arityError("len", 1, f.ArgCount())
	}
	switch v := f.Arg(0).(type) {
	case *value.Array:
		return value.Int(v.Len()), nil
	case *value.Dict:
		return value.Int(v.Len()), nil
	case value.String:
		return value.Int(len(v)), nil
	default:
		return nil, typeError("len", 0, "array, dict or string", f.Arg(0))
	}
}

// pushFn appends its second argument to the array passed as the first,
// in place, and returns the array back (so pushes can be chained).
func pushFn(f value.HostFrame) (value.Value, error) {
	if f.ArgCount() != 2 {
		return nil, arityError("push", 2, f.ArgCount())
	}
	arr, ok := f.Arg(0).(*value.Array)
	if !ok {
		return nil, typeError("push", 0, "array", f.Arg(0))
	}
	arr.Push(f.Arg(1))
	return arr, nil
}

// keysFn returns a new array holding a dict's keys, in unspecified
// order (matching Dict.Keys).
func keysFn(f value.HostFrame) (value.Value, error) {
	if f.ArgCount() != 1 {
		return nil, arityError("keys", 1, f.ArgCount())
	}
	d, ok := f.Arg(0).(*value.Dict)
	if !ok {
		return nil, typeError("keys", 0, "dict", f.Arg(0))
	}
	return value.NewArray(d.Keys()), nil
}

// typeOfFn returns the argument's kind as a string, for programs that
// need to branch on a value's dynamic type.
func typeOfFn(f value.HostFrame) (value.Value, error) {
	if f.ArgCount() != 1 {
		return nil, arityError("type_of", 1, f.ArgCount())
	}
	return value.String(f.Arg(0).Kind().String()), nil
}

// toStringFn renders any value via its own String method.
func toStringFn(f value.HostFrame) (value.Value, error) {
	if f.ArgCount() != 1 {
		return nil, arityError("to_string", 1, f.ArgCount())
	}
	return value.String(f.Arg(0).String()), nil
}

// printFn writes each argument's String form to out, space-separated
// and newline-terminated, and returns nil.
func printFn(out io.Writer) func(value.HostFrame) (value.Value, error) {
	return func(f value.HostFrame) (value.Value, error) {
		for i := 0; i < f.ArgCount(); i++ {
			if i > 0 {
				fmt.Fprint(out, " ")
			}
			fmt.Fprint(out, f.Arg(i).String())
		}
		fmt.Fprintln(out)
		return value.NilValue, nil
	}
}
