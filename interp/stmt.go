package interp

import (
	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// evalBlock runs every statement in block in order. The value of the
// last statement executed becomes the block's result under FlowRegular;
// a non-ExprStmt statement contributes value.NilValue, so a block
// ending in, say, a While loop evaluates to nil rather than whatever an
// earlier ExprStmt produced.
func (rt *Runtime) evalBlock(base int, block program.Block) (value.Value, Flow, error) {
	var result value.Value = value.NilValue
	for _, stmt := range block {
		v, flow, err := rt.evalStatement(base, stmt)
		if err != nil || flow != FlowRegular {
			return v, flow, err
		}
		result = v
	}
	return result, FlowRegular, nil
}

func (rt *Runtime) evalStatement(base int, stmt program.Statement) (value.Value, Flow, error) {
	switch s := stmt.(type) {
	case program.Assign:
		return rt.evalAssign(base, s)

	case program.Return:
		v, flow, err := rt.evalExpr(base, s.Expr)
		if err != nil || flow != FlowRegular {
			return v, flow, err
		}
		return v, FlowReturn, nil

	case program.Break:
		return value.NilValue, FlowBreak, nil

	case program.While:
		return rt.evalWhile(base, s)

	case program.For:
		return rt.evalFor(base, s)

	case program.ExprStmt:
		return rt.evalExpr(base, s.Expr)

	default:
		return nil, FlowRegular, bugf("unhandled statement kind %T", stmt)
	}
}

func (rt *Runtime) evalAssign(base int, s program.Assign) (value.Value, Flow, error) {
	v, flow, err := rt.evalExpr(base, s.Right)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}

	switch lv := s.Left.(type) {
	case program.IdentLvalue:
		rt.stack.store(base, lv.Slot, v)
		return value.NilValue, FlowRegular, nil

	case program.AccessLvalue:
		obj, flow, err := rt.evalExpr(base, lv.Object)
		if err != nil || flow != FlowRegular {
			return nil, flow, err
		}
		field, flow, err := rt.evalExpr(base, lv.Field)
		if err != nil || flow != FlowRegular {
			return nil, flow, err
		}
		switch o := obj.(type) {
		case *value.Dict:
			o.Set(field, v)
			return value.NilValue, FlowRegular, nil
		case *value.Array:
			idx, ok := field.(value.Int)
			if !ok {
				return nil, FlowRegular, invalidOperand(exprPos(lv.Field), field, "array index must be an int")
			}
			if !o.Set(int64(idx), v) {
				return nil, FlowRegular, indexOutOfBounds(exprPos(lv.Field), field, "array index out of bounds")
			}
			return value.NilValue, FlowRegular, nil
		default:
			return nil, FlowRegular, invalidOperand(exprPos(lv.Object), obj, "only arrays and dicts can be assigned through")
		}

	default:
		return nil, FlowRegular, bugf("unhandled lvalue kind %T", s.Left)
	}
}

// evalWhile repeats Body while Cond evaluates true. Break exits the
// loop as FlowRegular; Return and errors propagate straight through.
func (rt *Runtime) evalWhile(base int, s program.While) (value.Value, Flow, error) {
	for {
		cond, flow, err := rt.evalExpr(base, s.Cond)
		if err != nil || flow != FlowRegular {
			return nil, flow, err
		}
		b, ok := cond.(value.Bool)
		if !ok {
			return nil, FlowRegular, invalidCondition(exprPos(s.Cond), cond, "while condition must be a bool")
		}
		if !bool(b) {
			return value.NilValue, FlowRegular, nil
		}

		v, flow, err := rt.evalBlock(base, s.Body)
		if err != nil {
			return nil, FlowRegular, err
		}
		switch flow {
		case FlowRegular:
			continue
		case FlowBreak:
			return value.NilValue, FlowRegular, nil
		case FlowReturn:
			return v, FlowReturn, nil
		default:
			return nil, FlowRegular, bugf("unhandled flow %v from while body", flow)
		}
	}
}

// finishedKey and valueKey are the dict keys the for-loop iterator
// protocol uses: calling the iterator with no arguments must return a
// dict holding a "finished" bool and, when not finished, a "value".
const (
	finishedKey = value.String("finished")
	valueKey    = value.String("value")
)

// evalFor drives Body once per step produced by calling Iter, per the
// iterator protocol: Iter is evaluated once to a Function, then called
// with zero arguments on every iteration until its result dict's
// "finished" entry is true.
func (rt *Runtime) evalFor(base int, s program.For) (value.Value, Flow, error) {
	iterVal, flow, err := rt.evalExpr(base, s.Iter)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}
	iterFn, ok := iterVal.(value.Function)
	if !ok {
		return nil, FlowRegular, invalidCall(exprPos(s.Iter), iterVal, "for iterator must be callable")
	}

	for {
		stepVal, derr := rt.dispatch(iterFn, nil, forPos(s))
		if derr != nil {
			return nil, FlowRegular, derr
		}
		dict, ok := stepVal.(*value.Dict)
		if !ok {
			return nil, FlowRegular, invalidOperand(forPos(s), stepVal, "for iterator must return a dict")
		}
		finishedVal, ok := dict.Get(finishedKey)
		if !ok {
			return nil, FlowRegular, indexOutOfBounds(forPos(s), finishedKey, `for iterator dict missing "finished"`)
		}
		finished, ok := finishedVal.(value.Bool)
		if !ok {
			return nil, FlowRegular, invalidOperand(forPos(s), finishedVal, `for iterator "finished" must be a bool`)
		}
		if bool(finished) {
			return value.NilValue, FlowRegular, nil
		}

		item, ok := dict.Get(valueKey)
		if !ok {
			return nil, FlowRegular, indexOutOfBounds(forPos(s), valueKey, `for iterator dict missing "value"`)
		}
		rt.stack.store(base, s.Slot, item)

		v, flow, err := rt.evalBlock(base, s.Body)
		if err != nil {
			return nil, FlowRegular, err
		}
		switch flow {
		case FlowRegular:
			continue
		case FlowBreak:
			return value.NilValue, FlowRegular, nil
		case FlowReturn:
			return v, FlowReturn, nil
		default:
			return nil, FlowRegular, bugf("unhandled flow %v from for body", flow)
		}
	}
}

// forPos recovers a reasonable source position for an iterator-protocol
// fault, since For does not carry a dedicated SourcePos of its own.
func forPos(s program.For) program.SourcePos {
	return exprPos(s.Iter)
}

func exprPos(e program.Expr) program.SourcePos {
	switch n := e.(type) {
	case program.Identifier:
		return n.Pos
	case program.LiteralExpr:
		return n.Pos
	case program.UnaryOp:
		return n.Pos
	case program.BinaryOp:
		return n.Pos
	case program.If:
		return n.Pos
	case program.Access:
		return n.Pos
	case program.Call:
		return n.Pos
	case program.CommandBlock:
		return n.Pos
	default:
		return program.SourcePos{}
	}
}
