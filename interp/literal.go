package interp

import (
	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// evalLiteral evaluates a literal form to a Value. Array and Dict
// literals evaluate their sub-expressions left to right and propagate
// the first non-regular flow they hit, exactly like any other
// expression sequence.
func (rt *Runtime) evalLiteral(base int, lit program.Literal, pos program.SourcePos) (value.Value, Flow, error) {
	switch l := lit.(type) {
	case program.NilLit:
		return value.NilValue, FlowRegular, nil

	case program.BoolLit:
		return value.Bool(l), FlowRegular, nil

	case program.IntLit:
		return value.Int(l), FlowRegular, nil

	case program.FloatLit:
		return value.Float(l), FlowRegular, nil

	case program.ByteLit:
		return value.Byte(l), FlowRegular, nil

	case program.StringLit:
		return value.String(l), FlowRegular, nil

	case program.ArrayLit:
		elems := make([]value.Value, 0, len(l.Elems))
		for _, e := range l.Elems {
			v, flow, err := rt.evalExpr(base, e)
			if err != nil || flow != FlowRegular {
				return nil, flow, err
			}
			elems = append(elems, v)
		}
		return value.NewArray(elems), FlowRegular, nil

	case program.DictLit:
		d := value.NewDict()
		for _, entry := range l.Entries {
			name, ok := rt.interner.Resolve(entry.Key)
			if !ok {
				return nil, FlowRegular, bugf("unresolved dict key symbol at %s", pos)
			}
			v, flow, err := rt.evalExpr(base, entry.Value)
			if err != nil || flow != FlowRegular {
				return nil, flow, err
			}
			d.Set(value.String(name), v)
		}
		return d, FlowRegular, nil

	case program.FunctionLit:
		captures := make([]value.Capture, 0, len(l.Frame.Captures))
		for _, c := range l.Frame.Captures {
			captures = append(captures, value.Capture{
				Cell:   rt.stack.capture(base, c.From),
				ToSlot: int(c.To),
			})
		}
		selfSlot := -1
		if l.Frame.SelfSlot != nil {
			selfSlot = int(*l.Frame.SelfSlot)
		}
		return &value.UserFn{
			ParamCount: l.ParamCount,
			Slots:      l.Frame.Slots,
			SelfSlot:   selfSlot,
			Body:       l.Body,
			Captures:   captures,
			Pos:        l.Pos,
		}, FlowRegular, nil

	case program.IdentifierLit:
		name, ok := rt.interner.Resolve(l.Sym)
		if !ok {
			return nil, FlowRegular, bugf("unresolved identifier symbol at %s", pos)
		}
		return value.String(name), FlowRegular, nil

	default:
		return nil, FlowRegular, bugf("unhandled literal kind %T at %s", lit, pos)
	}
}
