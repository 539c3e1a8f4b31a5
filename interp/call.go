package interp

import (
	"fmt"

	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// evalCall evaluates a Call expression: the callee (specially handling
// an Access callee so the indexed-into object becomes the receiver),
// then each argument left to right, staging them in the pending-argument
// buffer before dispatch ever extends the callee's frame. Arguments are
// staged only once all of them have been evaluated, so a call nested in
// an argument never drains this call's arguments.
func (rt *Runtime) evalCall(base int, n program.Call) (value.Value, Flow, error) {
	var callee value.Value
	var receiver value.Value
	var flow Flow
	var err error

	if access, ok := n.Callee.(program.Access); ok {
		callee, receiver, flow, err = rt.evalAccess(base, access)
	} else {
		callee, flow, err = rt.evalExpr(base, n.Callee)
	}
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}

	fn, ok := callee.(value.Function)
	if !ok {
		return nil, FlowRegular, invalidCall(exprPos(n.Callee), callee, "callee is not a function")
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, argExpr := range n.Args {
		v, flow, err := rt.evalExpr(base, argExpr)
		if err != nil || flow != FlowRegular {
			rt.clearArgs()
			return nil, flow, err
		}
		args = append(args, v)
	}
	for i, v := range args {
		rt.pushArg(program.SlotIx(i), v)
	}

	val, derr := rt.dispatch(fn, receiver, n.Pos)
	if derr != nil {
		return nil, FlowRegular, derr
	}
	return val, FlowRegular, nil
}

// dispatch invokes fn with whatever arguments are currently staged in
// the pending-argument buffer, draining it unconditionally before
// running the callee's body (or Go callable), and shrinking the
// extended frame regardless of whether the callee's body faulted.
func (rt *Runtime) dispatch(fn value.Function, receiver value.Value, pos program.SourcePos) (value.Value, error) {
	args := rt.drainArgs()

	switch f := fn.(type) {
	case *value.UserFn:
		if len(args) != f.ParamCount {
			return nil, missingParameters(pos, fmt.Sprintf("expected %d argument(s), got %d", f.ParamCount, len(args)))
		}
		base, perr := rt.stack.extend(f.Slots, pos)
		if perr != nil {
			return nil, perr
		}
		for _, a := range args {
			rt.stack.store(base, a.slot, a.val)
		}
		for _, c := range f.Captures {
			rt.stack.place(base, program.SlotIx(c.ToSlot), c.Cell)
		}
		if f.SelfSlot >= 0 && receiver != nil {
			rt.stack.store(base, program.SlotIx(f.SelfSlot), receiver)
		}

		val, flow, err := rt.evalBlock(base, f.Body)
		rt.stack.shrink(base)
		if err != nil {
			return nil, err
		}
		switch flow {
		case FlowRegular, FlowReturn:
			if val == nil {
				val = value.NilValue
			}
			return val, nil
		case FlowBreak:
			return nil, bugf("break escaped its loop, function defined at %s", f.Pos)
		default:
			return nil, bugf("unhandled flow %v returned from function body", flow)
		}

	case *value.HostFn:
		base, perr := rt.stack.extend(len(args), pos)
		if perr != nil {
			return nil, perr
		}
		for _, a := range args {
			rt.stack.store(base, a.slot, a.val)
		}
		frame := &hostFrame{s: rt.stack, base: base, n: len(args)}
		val, err := f.Callable(frame)
		rt.stack.shrink(base)
		if err != nil {
			return nil, err
		}
		if val == nil {
			val = value.NilValue
		}
		return val, nil

	default:
		return nil, bugf("unhandled function kind %T", fn)
	}
}

// hostFrame is the HostFrame view handed to a HostFn's Callable: the
// slice of the slot stack occupied by its arguments.
type hostFrame struct {
	s    *stack
	base int
	n    int
}

func (h *hostFrame) Arg(i int) value.Value         { return h.s.fetch(h.base, program.SlotIx(i)) }
func (h *hostFrame) SetArg(i int, v value.Value)   { h.s.store(h.base, program.SlotIx(i), v) }
func (h *hostFrame) ArgCount() int                 { return h.n }
