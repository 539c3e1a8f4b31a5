package interp

import (
	"testing"

	"github.com/389850689/hush/program"
	"github.com/389850689/hush/value"
)

// testInterner is a fixed-table Interner for building test trees that
// use symbol-keyed dict literals or identifier literals.
type testInterner map[program.Symbol]string

func (m testInterner) Resolve(s program.Symbol) (string, bool) {
	v, ok := m[s]
	return v, ok
}

func pos() program.SourcePos { return program.SourcePos{File: "test"} }

func lit(l program.Literal) program.Expr {
	return program.LiteralExpr{Lit: l, Pos: pos()}
}

func ident(slot int) program.Expr {
	return program.Identifier{Slot: program.SlotIx(slot), Pos: pos()}
}

func evalProgram(t *testing.T, rootSlots int, stmts program.Block) (value.Value, error) {
	t.Helper()
	p := &program.Program{RootSlots: rootSlots, Source: "test", Statements: stmts}
	return Eval(p, testInterner{}, Options{})
}

func TestArithmeticPrecedenceLikeShape(t *testing.T) {
	// (2 + 3) * 4
	v, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.BinaryOp{
			Left: program.BinaryOp{
				Left:  lit(program.IntLit(2)),
				Op:    program.OpPlus,
				Right: lit(program.IntLit(3)),
				Pos:   pos(),
			},
			Op:    program.OpTimes,
			Right: lit(program.IntLit(4)),
			Pos:   pos(),
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(v, value.Int(20)) {
		t.Errorf("expected 20, got %v", v)
	}
}

func TestIntegerOverflowFaults(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.BinaryOp{
			Left:  lit(program.IntLit(int64(1) << 62)),
			Op:    program.OpTimes,
			Right: lit(program.IntLit(4)),
			Pos:   pos(),
		}},
	})
	p, ok := err.(*Panic)
	if !ok {
		t.Fatalf("expected *Panic, got %T (%v)", err, err)
	}
	if p.Kind != IntegerOverflow {
		t.Errorf("expected IntegerOverflow, got %v", p.Kind)
	}
}

func TestDivisionByZeroFaults(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.BinaryOp{
			Left:  lit(program.IntLit(1)),
			Op:    program.OpDiv,
			Right: lit(program.IntLit(0)),
			Pos:   pos(),
		}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v (%T)", err, err)
	}
}

func TestArrayIndexAssignment(t *testing.T) {
	// slot1 = [1,2,3]; slot1[1] = 99; slot1
	v, err := evalProgram(t, 2, program.Block{
		program.Assign{
			Left: program.IdentLvalue{Slot: 1, Pos: pos()},
			Right: lit(program.ArrayLit{Elems: []program.Expr{
				lit(program.IntLit(1)), lit(program.IntLit(2)), lit(program.IntLit(3)),
			}}),
		},
		program.Assign{
			Left: program.AccessLvalue{
				Object: ident(1),
				Field:  lit(program.IntLit(1)),
				Pos:    pos(),
			},
			Right: lit(program.IntLit(99)),
		},
		program.ExprStmt{Expr: ident(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("expected array, got %T", v)
	}
	got, _ := arr.Get(1)
	if !value.Equal(got, value.Int(99)) {
		t.Errorf("expected arr[1] == 99, got %v", got)
	}
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.Access{
			Object: lit(program.ArrayLit{Elems: []program.Expr{lit(program.IntLit(1))}}),
			Field:  lit(program.IntLit(5)),
			Pos:    pos(),
		}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != IndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %v (%T)", err, err)
	}
}

func TestDictIntKeyLookup(t *testing.T) {
	// dict literal cannot use an Int key directly (DictLit keys are
	// interned symbols), but Access/assign through a dict does accept any
	// Value as a key, so build the dict by assigning into it.
	v, err := evalProgram(t, 2, program.Block{
		program.Assign{Left: program.IdentLvalue{Slot: 1, Pos: pos()}, Right: lit(program.DictLit{})},
		program.Assign{
			Left: program.AccessLvalue{Object: ident(1), Field: lit(program.IntLit(7)), Pos: pos()},
			Right: lit(program.StringLit("seven")),
		},
		program.ExprStmt{Expr: program.Access{Object: ident(1), Field: lit(program.IntLit(7)), Pos: pos()}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(v, value.String("seven")) {
		t.Errorf(`expected "seven", got %v`, v)
	}
}

func TestDictAccessWrongKindFaultsInvalidOperand(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.Access{
			Object: lit(program.IntLit(1)),
			Field:  lit(program.StringLit("x")),
			Pos:    pos(),
		}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != InvalidOperand {
		t.Fatalf("expected InvalidOperand, got %v (%T)", err, err)
	}
}

func TestShortCircuitAndSkipsRightCall(t *testing.T) {
	// false and <call to a function that would fault> must not fault.
	panicking := &value.UserFn{ParamCount: 0, Slots: 0, SelfSlot: -1, Body: program.Block{
		program.ExprStmt{Expr: program.BinaryOp{
			Left: lit(program.IntLit(1)), Op: program.OpDiv, Right: lit(program.IntLit(0)), Pos: pos(),
		}},
	}, Pos: pos()}

	rt := New(testInterner{}, Options{})
	base, perr := rt.stack.extend(2, pos())
	if perr != nil {
		t.Fatal(perr)
	}
	rt.stack.store(base, 1, panicking)

	v, flow, err := rt.evalExpr(base, program.BinaryOp{
		Left:  lit(program.BoolLit(false)),
		Op:    program.OpAnd,
		Right: program.Call{Callee: ident(1), Pos: pos()},
		Pos:   pos(),
	})
	if err != nil || flow != FlowRegular {
		t.Fatalf("unexpected error/flow: %v %v", err, flow)
	}
	if !value.Equal(v, value.Bool(false)) {
		t.Errorf("expected false, got %v", v)
	}
}

func TestClosureCapturesByReferenceAcrossCalls(t *testing.T) {
	// slot1 = counter := 0
	// slot2 = fn() { slot0 = slot0 + 1; return slot0 } capturing slot1->0
	// slot3 = [slot2(), slot2(), slot2()]
	counterFn := program.FunctionLit{
		ParamCount: 0,
		Frame: program.FrameInfo{
			Slots:    1,
			Captures: []program.Capture{{From: 1, To: 0}},
		},
		Body: program.Block{
			program.Assign{
				Left: program.IdentLvalue{Slot: 0, Pos: pos()},
				Right: program.BinaryOp{
					Left: ident(0), Op: program.OpPlus, Right: lit(program.IntLit(1)), Pos: pos(),
				},
			},
			program.Return{Expr: ident(0)},
		},
		Pos: pos(),
	}

	v, err := evalProgram(t, 4, program.Block{
		program.Assign{Left: program.IdentLvalue{Slot: 1, Pos: pos()}, Right: lit(program.IntLit(0))},
		program.Assign{Left: program.IdentLvalue{Slot: 2, Pos: pos()}, Right: lit(counterFn)},
		program.Assign{
			Left: program.IdentLvalue{Slot: 3, Pos: pos()},
			Right: lit(program.ArrayLit{Elems: []program.Expr{
				program.Call{Callee: ident(2), Pos: pos()},
				program.Call{Callee: ident(2), Pos: pos()},
				program.Call{Callee: ident(2), Pos: pos()},
			}}),
		},
		program.ExprStmt{Expr: ident(3)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := v.(*value.Array)
	for i, want := range []int64{1, 2, 3} {
		got, _ := arr.Get(int64(i))
		if !value.Equal(got, value.Int(want)) {
			t.Errorf("element %d: expected %d, got %v", i, want, got)
		}
	}
}

func TestMethodCallBindsReceiver(t *testing.T) {
	getFn := program.FunctionLit{
		ParamCount: 0,
		Frame: program.FrameInfo{
			Slots:    1,
			SelfSlot: slotPtr(0),
		},
		Body: program.Block{
			program.Return{Expr: program.Access{
				Object: ident(0),
				Field:  lit(program.StringLit("n")),
				Pos:    pos(),
			}},
		},
		Pos: pos(),
	}

	interner := testInterner{1: "n", 2: "get"}
	obj := program.DictLit{Entries: []program.DictEntry{
		{Key: 1, Value: lit(program.IntLit(5))},
		{Key: 2, Value: lit(getFn)},
	}}

	p := &program.Program{RootSlots: 2, Source: "test", Statements: program.Block{
		program.Assign{Left: program.IdentLvalue{Slot: 1, Pos: pos()}, Right: lit(obj)},
		program.ExprStmt{Expr: program.Call{
			Callee: program.Access{Object: ident(1), Field: lit(program.StringLit("get")), Pos: pos()},
			Pos:    pos(),
		}},
	}}

	v, err := Eval(p, interner, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(v, value.Int(5)) {
		t.Errorf("expected 5, got %v", v)
	}
}

func TestMethodValueCalledDirectlyWithoutReceiverDoesNotFault(t *testing.T) {
	// A function with a self slot, called directly through an identifier
	// rather than through Access, binds no receiver — this must not
	// fault; the self slot is simply left at its frame default.
	fn := program.FunctionLit{
		ParamCount: 0,
		Frame: program.FrameInfo{
			Slots:    1,
			SelfSlot: slotPtr(0),
		},
		Body: program.Block{
			program.Return{Expr: lit(program.IntLit(42))},
		},
		Pos: pos(),
	}

	v, err := evalProgram(t, 2, program.Block{
		program.Assign{Left: program.IdentLvalue{Slot: 1, Pos: pos()}, Right: lit(fn)},
		program.ExprStmt{Expr: program.Call{Callee: ident(1), Pos: pos()}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(v, value.Int(42)) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestForLoopIteratorProtocol(t *testing.T) {
	count := 0
	iter := &value.HostFn{Name: "iter", Callable: func(f value.HostFrame) (value.Value, error) {
		if count >= 3 {
			d := value.NewDict()
			d.Set(finishedKey, value.Bool(true))
			return d, nil
		}
		count++
		d := value.NewDict()
		d.Set(finishedKey, value.Bool(false))
		d.Set(valueKey, value.Int(int64(count)))
		return d, nil
	}}

	rt := New(testInterner{}, Options{})
	base, perr := rt.stack.extend(3, pos())
	if perr != nil {
		t.Fatal(perr)
	}
	rt.stack.store(base, 1, iter)
	rt.stack.store(base, 2, value.Int(0))

	_, flow, err := rt.evalFor(base, program.For{
		Slot: 0,
		Iter: ident(1),
		Body: program.Block{
			program.Assign{
				Left: program.IdentLvalue{Slot: 2, Pos: pos()},
				Right: program.BinaryOp{Left: ident(2), Op: program.OpPlus, Right: ident(0), Pos: pos()},
			},
		},
	})
	if err != nil || flow != FlowRegular {
		t.Fatalf("unexpected error/flow: %v %v", err, flow)
	}
	sum := rt.stack.fetch(base, 2)
	if !value.Equal(sum, value.Int(6)) {
		t.Errorf("expected sum 6, got %v", sum)
	}
}

func TestForLoopMissingFinishedKeyFaultsIndexOutOfBounds(t *testing.T) {
	iter := &value.HostFn{Name: "iter", Callable: func(f value.HostFrame) (value.Value, error) {
		return value.NewDict(), nil
	}}

	rt := New(testInterner{}, Options{})
	base, perr := rt.stack.extend(2, pos())
	if perr != nil {
		t.Fatal(perr)
	}
	rt.stack.store(base, 1, iter)

	_, _, err := rt.evalFor(base, program.For{
		Slot: 0,
		Iter: ident(1),
		Body: program.Block{},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != IndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %v (%T)", err, err)
	}
}

func TestForLoopMissingValueKeyFaultsIndexOutOfBounds(t *testing.T) {
	iter := &value.HostFn{Name: "iter", Callable: func(f value.HostFrame) (value.Value, error) {
		d := value.NewDict()
		d.Set(finishedKey, value.Bool(false))
		return d, nil
	}}

	rt := New(testInterner{}, Options{})
	base, perr := rt.stack.extend(2, pos())
	if perr != nil {
		t.Fatal(perr)
	}
	rt.stack.store(base, 1, iter)

	_, _, err := rt.evalFor(base, program.For{
		Slot: 0,
		Iter: ident(1),
		Body: program.Block{},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != IndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %v (%T)", err, err)
	}
}

func TestCallNonFunctionFaultsInvalidCall(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.Call{Callee: lit(program.IntLit(1)), Pos: pos()}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != InvalidCall {
		t.Fatalf("expected InvalidCall, got %v (%T)", err, err)
	}
}

func TestWrongArityFaultsMissingParameters(t *testing.T) {
	fn := program.FunctionLit{ParamCount: 1, Frame: program.FrameInfo{Slots: 1, SelfSlot: nil}, Body: program.Block{
		program.Return{Expr: ident(0)},
	}, Pos: pos()}

	_, err := evalProgram(t, 2, program.Block{
		program.Assign{Left: program.IdentLvalue{Slot: 1, Pos: pos()}, Right: lit(fn)},
		program.ExprStmt{Expr: program.Call{Callee: ident(1), Pos: pos()}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != MissingParameters {
		t.Fatalf("expected MissingParameters, got %v (%T)", err, err)
	}
}

func TestNonBoolIfConditionFaultsInvalidCondition(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.If{Cond: lit(program.IntLit(1)), Pos: pos()}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != InvalidCondition {
		t.Fatalf("expected InvalidCondition, got %v (%T)", err, err)
	}
}

func TestRelationalOperatorFaultsInvalidOperand(t *testing.T) {
	_, err := evalProgram(t, 1, program.Block{
		program.ExprStmt{Expr: program.BinaryOp{
			Left: lit(program.IntLit(1)), Op: program.OpLess, Right: lit(program.IntLit(2)), Pos: pos(),
		}},
	})
	p, ok := err.(*Panic)
	if !ok || p.Kind != InvalidOperand {
		t.Fatalf("expected InvalidOperand, got %v (%T)", err, err)
	}
}

func slotPtr(i int) *program.SlotIx {
	s := program.SlotIx(i)
	return &s
}
