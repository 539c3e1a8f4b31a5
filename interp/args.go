package interp

import (
	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// pendingArg is one evaluated call argument, staged against the slot it
// will occupy in the callee's frame once the callee is actually
// extended.
type pendingArg struct {
	slot program.SlotIx
	val  value.Value
}

// pushArg stages an evaluated argument.
func (rt *Runtime) pushArg(slot program.SlotIx, v value.Value) {
	rt.pending = append(rt.pending, pendingArg{slot: slot, val: v})
}

// drainArgs removes and returns every staged argument. The dispatcher
// calls this unconditionally before running a callee's body, so a
// pending buffer never leaks into an unrelated call.
func (rt *Runtime) drainArgs() []pendingArg {
	p := rt.pending
	rt.pending = nil
	return p
}

// clearArgs discards staged arguments without placing them, used when a
// Call's argument evaluation is interrupted by non-regular flow before
// the callee is ever invoked.
func (rt *Runtime) clearArgs() {
	rt.pending = nil
}
