package interp

import (
	"math"

	"github.com/389850689/hush/program"
)

// Integer arithmetic is checked, the way the original runtime's
// checked_add/checked_sub/checked_mul/checked_div/checked_rem family is:
// wraparound is never silently produced, it always faults
// IntegerOverflow instead.

func addOverflows(a, b int64) bool {
	r := a + b
	return ((a ^ r) & (b ^ r)) < 0
}

func subOverflows(a, b int64) bool {
	r := a - b
	return ((a ^ b) & (a ^ r)) < 0
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if a == -1 && b == math.MinInt64 {
		return true
	}
	if b == -1 && a == math.MinInt64 {
		return true
	}
	return (a*b)/b != a
}

func negOverflows(a int64) bool {
	return a == math.MinInt64
}

func intAdd(pos program.SourcePos, a, b int64) (int64, *Panic) {
	if addOverflows(a, b) {
		return 0, integerOverflow(pos)
	}
	return a + b, nil
}

func intSub(pos program.SourcePos, a, b int64) (int64, *Panic) {
	if subOverflows(a, b) {
		return 0, integerOverflow(pos)
	}
	return a - b, nil
}

func intMul(pos program.SourcePos, a, b int64) (int64, *Panic) {
	if mulOverflows(a, b) {
		return 0, integerOverflow(pos)
	}
	return a * b, nil
}

func intDiv(pos program.SourcePos, a, b int64) (int64, *Panic) {
	if b == 0 {
		return 0, divisionByZero(pos)
	}
	if a == math.MinInt64 && b == -1 {
		return 0, integerOverflow(pos)
	}
	return a / b, nil
}

func intMod(pos program.SourcePos, a, b int64) (int64, *Panic) {
	if b == 0 {
		return 0, divisionByZero(pos)
	}
	if a == math.MinInt64 && b == -1 {
		return 0, integerOverflow(pos)
	}
	return a % b, nil
}
