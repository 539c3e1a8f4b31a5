// Command hush is a minimal embedder for the evaluation core. It is
// not a general-purpose CLI and does not read hush source text — no
// front end lives in this module — so it hand-builds one small
// resolved program.Program tree and runs it, the same spirit as
// yaegi's own cmd/yaegi wrapping interp.New with a fixed script.
package main

import (
	"fmt"
	"os"

	"github.com/389850689/hush/interp"
	"github.com/389850689/hush/program"
	"github.com/389850689/hush/stdlib"
)

// emptyInterner resolves nothing: the demo program below never
// references a Symbol, so no string table is needed.
type emptyInterner struct{}

func (emptyInterner) Resolve(program.Symbol) (string, bool) { return "", false }

// buildDemo constructs: arr := [1, 2, 3]; arr[0] = 10; arr
// Slot 0 is reserved for the standard library; slot 1 holds arr.
func buildDemo() *program.Program {
	const arrSlot = program.SlotIx(1)
	pos := program.FilePos("cmd/hush/main.go")

	return &program.Program{
		RootSlots: 2,
		Source:    "cmd/hush/main.go",
		Statements: program.Block{
			program.Assign{
				Left: program.IdentLvalue{Slot: arrSlot, Pos: pos},
				Right: program.LiteralExpr{
					Pos: pos,
					Lit: program.ArrayLit{Elems: []program.Expr{
						program.LiteralExpr{Pos: pos, Lit: program.IntLit(1)},
						program.LiteralExpr{Pos: pos, Lit: program.IntLit(2)},
						program.LiteralExpr{Pos: pos, Lit: program.IntLit(3)},
					}},
				},
			},
			program.Assign{
				Left: program.AccessLvalue{
					Object: program.Identifier{Slot: arrSlot, Pos: pos},
					Field:  program.LiteralExpr{Pos: pos, Lit: program.IntLit(0)},
					Pos:    pos,
				},
				Right: program.LiteralExpr{Pos: pos, Lit: program.IntLit(10)},
			},
			program.ExprStmt{Expr: program.Identifier{Slot: arrSlot, Pos: pos}},
		},
	}
}

func main() {
	lib := stdlib.New(os.Stdout)
	result, err := interp.Eval(buildDemo(), emptyInterner{}, interp.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdlib: lib,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(result)
}
