// Package fender is a small demo type system wired against freight: a
// dynamically-typed host value with Int, Float, Bool, Error, Null,
// List, and Function variants, grounded on _examples/original_source's
// fender_tmp.rs prototype and extended with the reference-cell
// aliasing semantics freight.Value requires.
package fender

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Kind discriminates a Value's underlying variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindError
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindError:
		return "Error"
	case KindList:
		return "List"
	case KindFunction:
		return "Function"
	default:
		return "Null"
	}
}

// cell is the shared mutable storage backing a Value. Every Value holds
// a pointer to one; DupeRef/IntoRef hand out further pointers to the
// same cell so a write through Assign is observed by every handle
// (the Rc<RefCell<>> shape freight.Value documents).
type cell struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	errs string
	list []Value
	fn   FunctionRef

	// tag is a diagnostic identifier minted lazily the first time a
	// cell is inspected by name (the describe builtin), not on
	// every allocation — most values never need one.
	tag string
}

// Value is fender's concrete Value[Value] instantiation.
type Value struct {
	c *cell
}

func wrap(c cell) Value { return Value{c: &c} }

func Null() Value                 { return wrap(cell{kind: KindNull}) }
func Int(n int64) Value           { return wrap(cell{kind: KindInt, i: n}) }
func Float(f float64) Value       { return wrap(cell{kind: KindFloat, f: f}) }
func Bool(b bool) Value           { return wrap(cell{kind: KindBool, b: b}) }
func Errorf(format string, a ...any) Value {
	return wrap(cell{kind: KindError, errs: fmt.Sprintf(format, a...)})
}
func List(elems []Value) Value         { return wrap(cell{kind: KindList, list: elems}) }
func Function(fn FunctionRef) Value    { return wrap(cell{kind: KindFunction, fn: fn}) }

func (v Value) Kind() Kind { return v.c.kind }

func (v Value) AsInt() (int64, bool)     { return v.c.i, v.c.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.c.f, v.c.kind == KindFloat }
func (v Value) AsBool() (bool, bool)     { return v.c.b, v.c.kind == KindBool }
func (v Value) AsList() ([]Value, bool)  { return v.c.list, v.c.kind == KindList }
func (v Value) ErrorMessage() string     { return v.c.errs }

// Tag returns this cell's diagnostic identifier, minting one via uuid
// on first use so ordinary arithmetic never pays for an id it doesn't
// need.
func (v Value) Tag() string {
	if v.c.tag == "" {
		v.c.tag = uuid.NewString()
	}
	return v.c.tag
}

// Clone deep-copies the cell: lists are copied element-wise, mutating
// the clone never touches the original.
func (v Value) Clone() Value {
	c := *v.c
	c.tag = ""
	if v.c.kind == KindList {
		c.list = make([]Value, len(v.c.list))
		for i, e := range v.c.list {
			c.list[i] = e.Clone()
		}
	}
	return wrap(c)
}

// DupeRef and IntoRef both hand back a pointer to the same cell: every
// fender Value already addresses a cell, so there is nothing further
// to materialize.
func (v Value) DupeRef() Value { return v }
func (v Value) IntoRef() Value { return v }

func (v Value) Assign(newValue Value) { *v.c = *newValue.c }

func (v Value) CastToFunction() (FunctionRef, bool) {
	if v.c.kind != KindFunction {
		return FunctionRef{}, false
	}
	return v.c.fn, true
}

func (v Value) GenList(elems []Value) Value { return List(elems) }

// String renders v for diagnostics; it is not a language-level
// to-string conversion.
func (v Value) String() string {
	switch v.c.kind {
	case KindInt:
		return strconv.FormatInt(v.c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.c.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.c.b)
	case KindError:
		return "Error(" + v.c.errs + ")"
	case KindList:
		return fmt.Sprintf("List(len=%d)", len(v.c.list))
	case KindFunction:
		return "<function>"
	default:
		return "Null"
	}
}
