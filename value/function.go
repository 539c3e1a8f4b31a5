package value

import (
	"fmt"

	"github.com/389850689/hush/program"
)

// Cell is an individually addressable frame slot. The evaluation core's
// stack stores a *Cell per slot; a Capture simply shares the pointer, so
// writes made by the defining frame (or by anything else holding the
// same *Cell) are visible through the capture after the frame that
// created it has been shrunk. This is strategy (a) from the design notes:
// every slot cell is its own heap allocation from the start, rather than
// being promoted to the heap lazily when a closure captures it.
type Cell struct {
	V Value
}

// Capture pairs a shared Cell with the slot it is placed into inside a
// callee's frame.
type Capture struct {
	Cell   *Cell
	ToSlot int
}

// Function is implemented by both function kinds (UserFn, HostFn),
// letting the evaluator treat "is this a callable Value" as one type
// assertion regardless of which kind it turns out to be.
type Function interface {
	Value
	functionTag()
}

// UserFn is a closure over a program body: the block to run, the frame
// layout it needs, and the captured cells from its defining scope.
type UserFn struct {
	ParamCount int
	Slots      int
	// SelfSlot is the frame slot to bind the call's receiver into, or -1
	// if the function does not bind a receiver.
	SelfSlot int
	Body      program.Block
	Captures  []Capture
	Pos       program.SourcePos
}

func (f *UserFn) Kind() Kind     { return KindFunction }
func (f *UserFn) String() string { return fmt.Sprintf("function@%s", f.Pos) }
func (f *UserFn) functionTag()   {}

// HostFrame is the mutable view of a callee's argument slots handed to a
// HostFn's Callable, matching the call dispatcher's contract of invoking
// host functions with "a view of the slot stack and the number of
// argument slots."
type HostFrame interface {
	Arg(i int) Value
	SetArg(i int, v Value)
	ArgCount() int
}

// HostFn wraps a host-implemented (Go) function so it can be called
// through the same Call expression as a UserFn.
type HostFn struct {
	Name     string
	Callable func(frame HostFrame) (Value, error)
}

func (f *HostFn) Kind() Kind     { return KindFunction }
func (f *HostFn) String() string { return fmt.Sprintf("host function %s", f.Name) }
func (f *HostFn) functionTag()   {}
