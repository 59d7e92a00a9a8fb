package freight

import "fmt"

// testValue is a minimal demo Value used only by this package's own
// tests, grounded directly on _examples/original_source's
// src/tests/type_system.rs TestValueWrapper — a number/function/null
// enum, plus a list kind needed for the variadic scenario the
// distilled spec.md adds on top of that original test harness.
//
// Every testValue holds a pointer to a shared cell, so DupeRef/IntoRef
// can share mutable state the way spec.md §9 describes ("the natural
// encoding is an optional inner shared cell").
type tvKind uint8

const (
	tvNull tvKind = iota
	tvNumber
	tvFunction
	tvList
)

type tvCell struct {
	kind tvKind
	num  int64
	fn   FunctionRef[testValue]
	list []testValue
}

type testValue struct {
	cell *tvCell
}

func tvNew(c tvCell) testValue { return testValue{cell: &c} }

func testNull() testValue                            { return tvNew(tvCell{kind: tvNull}) }
func testNumber(n int64) testValue                   { return tvNew(tvCell{kind: tvNumber, num: n}) }
func testFunction(fn FunctionRef[testValue]) testValue { return tvNew(tvCell{kind: tvFunction, fn: fn}) }
func testList(elems []testValue) testValue           { return tvNew(tvCell{kind: tvList, list: elems}) }

func (v testValue) Clone() testValue {
	c := *v.cell
	return testValue{cell: &c}
}

// DupeRef and IntoRef both share the same cell pointer: every testValue
// is already "cell-based", so materializing one as a reference cell is
// a no-op beyond handing out another pointer to the same cell.
func (v testValue) DupeRef() testValue { return v }
func (v testValue) IntoRef() testValue { return v }

func (v testValue) Assign(newValue testValue) {
	*v.cell = *newValue.cell
}

func (v testValue) CastToFunction() (FunctionRef[testValue], bool) {
	if v.cell.kind == tvFunction {
		return v.cell.fn, true
	}
	return FunctionRef[testValue]{}, false
}

func (v testValue) GenList(elems []testValue) testValue {
	return testList(elems)
}

func (v testValue) String() string {
	switch v.cell.kind {
	case tvNumber:
		return fmt.Sprintf("%d", v.cell.num)
	case tvFunction:
		return "<function>"
	case tvList:
		return fmt.Sprintf("<list len=%d>", len(v.cell.list))
	default:
		return "null"
	}
}

type tvAdd struct{}

func (tvAdd) Apply2(a, b testValue) testValue { return testNumber(a.cell.num + b.cell.num) }

type tvInc struct{}

func (tvInc) Apply1(a testValue) testValue { return testNumber(a.cell.num + 1) }

func testHost() Host[testValue] {
	return Host[testValue]{
		Zero: testNull,
		Box:  testFunction,
	}
}

// tvSumInit sums its collected args into a single number, used to
// exercise Initialize's left-to-right arg evaluation and delegation to
// a host initializer.
type tvSumInit struct{}

func (tvSumInit) Initialize(args []testValue, _ *Engine[testValue]) testValue {
	var sum int64
	for _, a := range args {
		sum += a.cell.num
	}
	return testNumber(sum)
}

// recordingInit records whether Initialize ran, used to confirm a
// failing argument short-circuits before the initializer is reached.
type recordingInit struct{ ran *bool }

func (r recordingInit) Initialize(_ []testValue, _ *Engine[testValue]) testValue {
	*r.ran = true
	return testNull()
}
