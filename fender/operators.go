package fender

import (
	"math"

	"github.com/fenderlang/freight"
)

// Binary operators, grounded on original_source's fender_tmp.rs
// BinaryOperator::apply match arms: numeric ops promote Int to Float
// when mixed, and any other operand pairing yields an Error value
// rather than a Go error (arithmetic failures are host-level values,
// not control-flow).

type addOp struct{}
type subOp struct{}
type mulOp struct{}
type divOp struct{}
type modOp struct{}

// Add is fender's "+" binary operator.
var Add addOp

// Sub is fender's "-" binary operator.
var Sub subOp

// Mul is fender's "*" binary operator.
var Mul mulOp

// Div is fender's "/" binary operator.
var Div divOp

// Mod is fender's "%" binary operator.
var Mod modOp

func (addOp) Apply2(a, b Value) Value { return numericOp(a, b, "+", func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }) }
func (subOp) Apply2(a, b Value) Value { return numericOp(a, b, "-", func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }) }
func (mulOp) Apply2(a, b Value) Value { return numericOp(a, b, "*", func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }) }

func (divOp) Apply2(a, b Value) Value {
	return numericOp(a, b, "/", func(x, y int64) int64 {
		if y == 0 {
			return 0
		}
		return x / y
	}, func(x, y float64) float64 { return x / y })
}

func (modOp) Apply2(a, b Value) Value {
	return numericOp(a, b, "%", func(x, y int64) int64 {
		if y == 0 {
			return 0
		}
		return x % y
	}, math.Mod)
}

func numericOp(a, b Value, name string, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) Value {
	switch {
	case a.Kind() == KindInt && b.Kind() == KindInt:
		x, _ := a.AsInt()
		y, _ := b.AsInt()
		return Int(intOp(x, y))
	case a.Kind() == KindFloat && b.Kind() == KindFloat:
		x, _ := a.AsFloat()
		y, _ := b.AsFloat()
		return Float(floatOp(x, y))
	case a.Kind() == KindInt && b.Kind() == KindFloat:
		x, _ := a.AsInt()
		y, _ := b.AsFloat()
		return Float(floatOp(float64(x), y))
	case a.Kind() == KindFloat && b.Kind() == KindInt:
		x, _ := a.AsFloat()
		y, _ := b.AsInt()
		return Float(floatOp(x, float64(y)))
	default:
		return Errorf("cannot apply %s to %s and %s", name, a.Kind(), b.Kind())
	}
}

// Unary operators: Neg negates a number, BoolNeg flips a bool.

type negOp struct{}
type boolNegOp struct{}

// Neg is fender's unary "-" operator.
var Neg negOp

// BoolNeg is fender's unary "!" operator.
var BoolNeg boolNegOp

func (negOp) Apply1(v Value) Value {
	switch v.Kind() {
	case KindInt:
		n, _ := v.AsInt()
		return Int(-n)
	case KindFloat:
		f, _ := v.AsFloat()
		return Float(-f)
	default:
		return Errorf("cannot negate %s", v.Kind())
	}
}

func (boolNegOp) Apply1(v Value) Value {
	if v.Kind() != KindBool {
		return Errorf("cannot boolean-negate %s", v.Kind())
	}
	b, _ := v.AsBool()
	return Bool(!b)
}

// Operators exposes fender's unary and binary operators uniformly
// behind freight's Operator sum type, so introspection code (see
// ListOperators/ApplyOperator) can hold "some operator" by name without
// caring which arity it is until it actually needs to apply it.
var Operators = map[string]freight.Operator[Value]{
	"+":   freight.BinaryOp[Value](Add),
	"-":   freight.BinaryOp[Value](Sub),
	"*":   freight.BinaryOp[Value](Mul),
	"/":   freight.BinaryOp[Value](Div),
	"%":   freight.BinaryOp[Value](Mod),
	"neg": freight.UnaryOp[Value](Neg),
	"!":   freight.UnaryOp[Value](BoolNeg),
}
