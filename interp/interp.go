// Package interp is the evaluation core: it walks an already-resolved
// program.Program tree and produces a value.Value or a user-visible
// Panic. It never parses source text itself; that is the job of a
// front end living outside this module.
package interp

import (
	"io"
	"os"

	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// Options configures a Runtime, the way yaegi's Options configures an
// Interpreter: a small struct of knobs with sensible defaults filled in
// by New, rather than a long constructor argument list.
type Options struct {
	// Stdout and Stderr are kept on the Runtime, defaulted to
	// os.Stdout/os.Stderr when nil. The core writes to neither; a host
	// function such as stdlib's print writes to the writer it was built
	// with.
	Stdout io.Writer
	Stderr io.Writer
	// MaxStackDepth bounds the slot stack; 0 selects defaultMaxDepth.
	MaxStackDepth int
	// Stdlib is installed into the program's root slot 0, the way the
	// Rust original installs lib::new() there before running the
	// top-level block. A nil Stdlib installs value.NilValue instead,
	// for programs that never reference it.
	Stdlib value.Value
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// Runtime drives evaluation of a single program.Program. It is not
// safe for concurrent use, and is not meant to be reused across
// unrelated programs: construct a fresh one per Eval call the way the
// Rust original constructs a fresh Runtime per invocation.
type Runtime struct {
	stack    *stack
	pending  []pendingArg
	interner program.Interner
	opts     Options
}

// New constructs a Runtime configured by opts, resolving interned
// symbols through interner.
func New(interner program.Interner, opts Options) *Runtime {
	opts = opts.withDefaults()
	return &Runtime{
		stack:    newStack(opts.MaxStackDepth),
		interner: interner,
		opts:     opts,
	}
}

// Eval runs p to completion: it allocates the root frame, installs the
// configured standard library at slot 0, runs the top-level block, and
// requires the result to be FlowRegular — a top-level Return or Break
// escaping the program is an implementation bug, not a user Panic,
// because the front end should never produce a tree where either can
// reach the top level.
func (rt *Runtime) Eval(p *program.Program) (value.Value, error) {
	pos := program.FilePos(p.Source)

	base, perr := rt.stack.extend(p.RootSlots, pos)
	if perr != nil {
		return nil, perr
	}

	if p.RootSlots > 0 {
		stdlib := rt.opts.Stdlib
		if stdlib == nil {
			stdlib = value.NilValue
		}
		rt.stack.store(base, 0, stdlib)
	}

	val, flow, err := rt.evalBlock(base, p.Statements)
	rt.stack.shrink(base)
	if err != nil {
		return nil, err
	}
	if flow != FlowRegular {
		return nil, bugf("top-level program ended with non-regular flow %v", flow)
	}
	if len(rt.pending) != 0 {
		return nil, bugf("argument buffer not empty after top-level evaluation")
	}
	if val == nil {
		val = value.NilValue
	}
	return val, nil
}

// Eval is a convenience wrapper that constructs a fresh Runtime with
// opts and evaluates p in one call, the shape most embedders reach for
// first (see cmd/hush).
func Eval(p *program.Program, interner program.Interner, opts Options) (value.Value, error) {
	return New(interner, opts).Eval(p)
}
