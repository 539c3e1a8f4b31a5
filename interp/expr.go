package interp

import (
	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// evalExpr evaluates e in the frame based at base. A non-regular flow
// carries no meaningful value; a non-nil error (always a *Panic, except
// for implementation-bug cases wrapped by bugf) takes precedence over
// flow and must be propagated immediately without inspecting either.
func (rt *Runtime) evalExpr(base int, e program.Expr) (value.Value, Flow, error) {
	switch n := e.(type) {
	case program.Identifier:
		return rt.stack.fetch(base, n.Slot), FlowRegular, nil

	case program.LiteralExpr:
		return rt.evalLiteral(base, n.Lit, n.Pos)

	case program.UnaryOp:
		return rt.evalUnaryOp(base, n)

	case program.BinaryOp:
		return rt.evalBinaryOp(base, n)

	case program.If:
		return rt.evalIf(base, n)

	case program.Access:
		v, _, flow, err := rt.evalAccess(base, n)
		return v, flow, err

	case program.Call:
		return rt.evalCall(base, n)

	case program.CommandBlock:
		return nil, FlowRegular, bugf("command blocks are not evaluated by this core (%s)", n.Pos)

	default:
		return nil, FlowRegular, bugf("unhandled expression kind %T", e)
	}
}

func (rt *Runtime) evalUnaryOp(base int, n program.UnaryOp) (value.Value, Flow, error) {
	operand, flow, err := rt.evalExpr(base, n.Operand)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}
	switch n.Op {
	case program.OpNeg:
		switch x := operand.(type) {
		case value.Int:
			if negOverflows(int64(x)) {
				return nil, FlowRegular, integerOverflow(n.Pos)
			}
			return value.Int(-int64(x)), FlowRegular, nil
		case value.Float:
			return value.Float(-float64(x)), FlowRegular, nil
		default:
			return nil, FlowRegular, invalidOperand(exprPos(n.Operand), operand, "unary - requires a number")
		}
	case program.OpNot:
		b, ok := operand.(value.Bool)
		if !ok {
			return nil, FlowRegular, invalidOperand(exprPos(n.Operand), operand, "unary not requires a bool")
		}
		return !b, FlowRegular, nil
	default:
		return nil, FlowRegular, bugf("unhandled unary operator %v", n.Op)
	}
}

func (rt *Runtime) evalBinaryOp(base int, n program.BinaryOp) (value.Value, Flow, error) {
	left, flow, err := rt.evalExpr(base, n.Left)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}

	// And/Or short-circuit on the left operand before the right is ever
	// evaluated.
	if n.Op == program.OpAnd || n.Op == program.OpOr {
		lb, ok := left.(value.Bool)
		if !ok {
			return nil, FlowRegular, invalidOperand(exprPos(n.Left), left, "logical operator requires a bool")
		}
		if n.Op == program.OpAnd && !bool(lb) {
			return value.Bool(false), FlowRegular, nil
		}
		if n.Op == program.OpOr && bool(lb) {
			return value.Bool(true), FlowRegular, nil
		}
		right, flow, err := rt.evalExpr(base, n.Right)
		if err != nil || flow != FlowRegular {
			return nil, flow, err
		}
		rb, ok := right.(value.Bool)
		if !ok {
			return nil, FlowRegular, invalidOperand(exprPos(n.Right), right, "logical operator requires a bool")
		}
		return rb, FlowRegular, nil
	}

	right, flow, err := rt.evalExpr(base, n.Right)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}

	switch n.Op {
	case program.OpEquals:
		return value.Bool(value.Equal(left, right)), FlowRegular, nil
	case program.OpNotEquals:
		return value.Bool(!value.Equal(left, right)), FlowRegular, nil
	case program.OpConcat:
		ls, lok := left.(value.String)
		if !lok {
			return nil, FlowRegular, invalidOperand(exprPos(n.Left), left, "++ requires two strings")
		}
		rs, rok := right.(value.String)
		if !rok {
			return nil, FlowRegular, invalidOperand(exprPos(n.Right), right, "++ requires two strings")
		}
		return value.String(string(ls) + string(rs)), FlowRegular, nil
	case program.OpLess, program.OpLessEq, program.OpGreater, program.OpGreaterEq:
		// Relational operators are not implemented by this evaluation
		// core; they fault the same catch-all as any other invalid
		// operand pairing.
		return nil, FlowRegular, invalidOperand(n.Pos, nil, "relational operators are not supported")
	case program.OpPlus, program.OpMinus, program.OpTimes, program.OpDiv, program.OpMod:
		return rt.evalArith(n, left, right)
	default:
		return nil, FlowRegular, bugf("unhandled binary operator %v", n.Op)
	}
}

func (rt *Runtime) evalArith(n program.BinaryOp, left, right value.Value) (value.Value, Flow, error) {
	li, lIsInt := left.(value.Int)
	ri, rIsInt := right.(value.Int)
	if lIsInt && rIsInt {
		var r int64
		var p *Panic
		switch n.Op {
		case program.OpPlus:
			r, p = intAdd(n.Pos, int64(li), int64(ri))
		case program.OpMinus:
			r, p = intSub(n.Pos, int64(li), int64(ri))
		case program.OpTimes:
			r, p = intMul(n.Pos, int64(li), int64(ri))
		case program.OpDiv:
			r, p = intDiv(n.Pos, int64(li), int64(ri))
		case program.OpMod:
			r, p = intMod(n.Pos, int64(li), int64(ri))
		}
		if p != nil {
			return nil, FlowRegular, p
		}
		return value.Int(r), FlowRegular, nil
	}

	lf, lIsNum := asFloat(left)
	rf, rIsNum := asFloat(right)
	if lIsNum && rIsNum {
		switch n.Op {
		case program.OpPlus:
			return value.Float(lf + rf), FlowRegular, nil
		case program.OpMinus:
			return value.Float(lf - rf), FlowRegular, nil
		case program.OpTimes:
			return value.Float(lf * rf), FlowRegular, nil
		case program.OpDiv:
			if rf == 0 {
				return nil, FlowRegular, divisionByZero(n.Pos)
			}
			return value.Float(lf / rf), FlowRegular, nil
		case program.OpMod:
			if rf == 0 {
				return nil, FlowRegular, divisionByZero(n.Pos)
			}
			return value.Float(mathMod(lf, rf)), FlowRegular, nil
		}
	}

	if !lIsNum {
		return nil, FlowRegular, invalidOperand(exprPos(n.Left), left, "left operand is not a number")
	}
	return nil, FlowRegular, invalidOperand(exprPos(n.Right), right, "right operand is not a number")
}

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Float:
		return float64(x), true
	default:
		return 0, false
	}
}

func mathMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func (rt *Runtime) evalIf(base int, n program.If) (value.Value, Flow, error) {
	cond, flow, err := rt.evalExpr(base, n.Cond)
	if err != nil || flow != FlowRegular {
		return nil, flow, err
	}
	b, ok := cond.(value.Bool)
	if !ok {
		return nil, FlowRegular, invalidCondition(exprPos(n.Cond), cond, "if condition must be a bool")
	}
	if bool(b) {
		return rt.evalBlock(base, n.Then)
	}
	return rt.evalBlock(base, n.Else)
}

// evalAccess evaluates object[field]/object.field and additionally
// returns the object value as a receiver candidate, for a directly
// enclosing Call to bind as self.
func (rt *Runtime) evalAccess(base int, n program.Access) (value.Value, value.Value, Flow, error) {
	obj, flow, err := rt.evalExpr(base, n.Object)
	if err != nil || flow != FlowRegular {
		return nil, nil, flow, err
	}
	field, flow, err := rt.evalExpr(base, n.Field)
	if err != nil || flow != FlowRegular {
		return nil, nil, flow, err
	}

	switch o := obj.(type) {
	case *value.Dict:
		v, ok := o.Get(field)
		if !ok {
			return nil, nil, FlowRegular, indexOutOfBounds(exprPos(n.Field), field, "key not found in dict")
		}
		return v, obj, FlowRegular, nil
	case *value.Array:
		idx, ok := field.(value.Int)
		if !ok {
			return nil, nil, FlowRegular, invalidOperand(exprPos(n.Field), field, "array index must be an int")
		}
		v, ok := o.Get(int64(idx))
		if !ok {
			return nil, nil, FlowRegular, indexOutOfBounds(exprPos(n.Field), field, "array index out of bounds")
		}
		return v, obj, FlowRegular, nil
	default:
		return nil, nil, FlowRegular, invalidOperand(exprPos(n.Object), obj, "only arrays and dicts can be indexed")
	}
}
