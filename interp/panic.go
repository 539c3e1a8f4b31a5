package interp

import (
	"fmt"

	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// PanicKind enumerates the user-visible runtime faults the evaluation
// core can raise. These are never recovered internally: they propagate
// all the way out of Eval as the returned error.
type PanicKind int

const (
	InvalidOperand PanicKind = iota
	InvalidCondition
	InvalidCall
	IndexOutOfBounds
	IntegerOverflow
	DivisionByZero
	MissingParameters
	StackOverflow
)

func (k PanicKind) String() string {
	switch k {
	case InvalidOperand:
		return "invalid operand"
	case InvalidCondition:
		return "invalid condition"
	case InvalidCall:
		return "invalid call"
	case IndexOutOfBounds:
		return "index out of bounds"
	case IntegerOverflow:
		return "integer overflow"
	case DivisionByZero:
		return "division by zero"
	case MissingParameters:
		return "missing parameters"
	case StackOverflow:
		return "stack overflow"
	default:
		return "unknown panic"
	}
}

// Panic is a user-visible runtime fault: a kind, the most specific
// source position available (typically the offending sub-expression,
// not the enclosing one), and — for InvalidOperand, InvalidCondition,
// InvalidCall and IndexOutOfBounds — the offending Value itself (the
// bad operand, condition, callee, or missing key), matching the typed
// payload spec's fault variants carry. It is returned as a plain error,
// never as a Go panic, so every call site in this package must
// explicitly check for it and shrink its own frame before propagating
// it.
type Panic struct {
	Kind PanicKind
	Pos  program.SourcePos
	// Value is the offending Value, or nil for fault kinds that don't
	// carry one (IntegerOverflow, DivisionByZero, MissingParameters,
	// StackOverflow). The InvalidOperand raised for a relational
	// operator also carries nil, since no single operand is at fault.
	Value value.Value
	// Detail adds fault-specific context; empty when Kind's own name is
	// self-explanatory.
	Detail string
}

func (p *Panic) Error() string {
	msg := fmt.Sprintf("%s: %s", p.Pos, p.Kind)
	if p.Value != nil {
		msg += fmt.Sprintf(" (%s)", p.Value.String())
	}
	if p.Detail != "" {
		msg += ": " + p.Detail
	}
	return msg
}

func newPanic(kind PanicKind, pos program.SourcePos, v value.Value, detail string) *Panic {
	return &Panic{Kind: kind, Pos: pos, Value: v, Detail: detail}
}

func invalidOperand(pos program.SourcePos, v value.Value, detail string) *Panic {
	return newPanic(InvalidOperand, pos, v, detail)
}

func invalidCondition(pos program.SourcePos, v value.Value, detail string) *Panic {
	return newPanic(InvalidCondition, pos, v, detail)
}

func invalidCall(pos program.SourcePos, v value.Value, detail string) *Panic {
	return newPanic(InvalidCall, pos, v, detail)
}

// indexOutOfBounds faults for both an out-of-range array index and a
// missing dict/iterator-protocol key; v is the offending index or key.
func indexOutOfBounds(pos program.SourcePos, v value.Value, detail string) *Panic {
	return newPanic(IndexOutOfBounds, pos, v, detail)
}

func integerOverflow(pos program.SourcePos) *Panic {
	return newPanic(IntegerOverflow, pos, nil, "")
}

func divisionByZero(pos program.SourcePos) *Panic {
	return newPanic(DivisionByZero, pos, nil, "")
}

func missingParameters(pos program.SourcePos, detail string) *Panic {
	return newPanic(MissingParameters, pos, nil, detail)
}

func stackOverflow(pos program.SourcePos) *Panic {
	return newPanic(StackOverflow, pos, nil, "")
}
