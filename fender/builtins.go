package fender

import (
	"fmt"
	"sort"

	"github.com/fenderlang/freight"
	"gopkg.in/yaml.v3"
)

// toPlain converts a Value into the plain Go shape yaml.v3 knows how to
// marshal: numbers, bools, strings, slices, or nil.
func toPlain(v Value) any {
	switch v.Kind() {
	case KindInt:
		n, _ := v.AsInt()
		return n
	case KindFloat:
		f, _ := v.AsFloat()
		return f
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindError:
		return v.ErrorMessage()
	case KindList:
		elems, _ := v.AsList()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toPlain(e)
		}
		return out
	case KindFunction:
		return "<function>"
	default:
		return nil
	}
}

// Describe renders v as a YAML document, tagging it with its uuid
// first so the dump doubles as a stable diagnostic handle across
// describe calls on the same cell.
func Describe(e *Engine, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, &freight.IncorrectArgumentCountError{Min: 1, Max: 1, MaxOK: true, Actual: len(args)}
	}
	v := args[0]
	doc := map[string]any{
		"tag":   v.Tag(),
		"kind":  v.Kind().String(),
		"value": toPlain(v),
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return Value{}, fmt.Errorf("fender: describing value: %w", err)
	}
	return List(stringToCharList(string(out))), nil
}

// stringToCharList splits s into the elements of a code-point list:
// one Int value per Unicode code point. Callers wrap the result with
// List, the same shape a host without a native string type uses to
// represent text as a sequence.
func stringToCharList(s string) []Value {
	runes := []rune(s)
	out := make([]Value, len(runes))
	for i, r := range runes {
		out[i] = Int(int64(r))
	}
	return out
}

func contextOf(e *Engine) (*GlobalContext, error) {
	ctx, ok := e.Context.(*GlobalContext)
	if !ok || ctx == nil {
		return nil, fmt.Errorf("fender: store_get/store_put require a *GlobalContext engine context")
	}
	return ctx, nil
}

// StoreGet is the store_get(key) native function: key is a fender List
// of code points (see stringToCharList), value comes back the same way,
// wrapped in a one-element list on hit or an empty list on miss.
func StoreGet(e *Engine, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, &freight.IncorrectArgumentCountError{Min: 1, Max: 1, MaxOK: true, Actual: len(args)}
	}
	ctx, err := contextOf(e)
	if err != nil {
		return Value{}, err
	}
	key, err := charListToString(args[0])
	if err != nil {
		return Value{}, err
	}
	value, ok, err := ctx.Get(key)
	if err != nil {
		return Value{}, fmt.Errorf("fender: store_get: %w", err)
	}
	if !ok {
		return List(nil), nil
	}
	return List([]Value{List(stringToCharList(value))}), nil
}

// StorePut is the store_put(key, value) native function.
func StorePut(e *Engine, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, &freight.IncorrectArgumentCountError{Min: 2, Max: 2, MaxOK: true, Actual: len(args)}
	}
	ctx, err := contextOf(e)
	if err != nil {
		return Value{}, err
	}
	key, err := charListToString(args[0])
	if err != nil {
		return Value{}, err
	}
	value, err := charListToString(args[1])
	if err != nil {
		return Value{}, err
	}
	if err := ctx.Put(key, value); err != nil {
		return Value{}, fmt.Errorf("fender: store_put: %w", err)
	}
	return Null(), nil
}

func charListToString(v Value) (string, error) {
	elems, ok := v.AsList()
	if !ok {
		return "", fmt.Errorf("fender: expected a code-point list, got %s", v.Kind())
	}
	runes := make([]rune, len(elems))
	for i, e := range elems {
		n, ok := e.AsInt()
		if !ok {
			return "", fmt.Errorf("fender: expected a code-point list, element %d is %s", i, e.Kind())
		}
		runes[i] = rune(n)
	}
	return string(runes), nil
}

// ListOperators is the operators() native function: returns a sorted
// List of "name:unary" or "name:binary" entries built purely from
// freight.Operator's IsUnary() introspection, without switching on the
// concrete operator type behind each registry entry.
func ListOperators(e *Engine, args []Value) (Value, error) {
	if len(args) != 0 {
		return Value{}, &freight.IncorrectArgumentCountError{Min: 0, Max: 0, MaxOK: true, Actual: len(args)}
	}
	names := make([]string, 0, len(Operators))
	for name := range Operators {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Value, len(names))
	for i, name := range names {
		arity := "binary"
		if Operators[name].IsUnary() {
			arity = "unary"
		}
		out[i] = List(stringToCharList(name + ":" + arity))
	}
	return List(out), nil
}

// ApplyOperator is the apply_operator(name, a, b) native function:
// looks name up in Operators and dispatches through whichever of
// Unary()/Binary() the wrapped operator actually reports, ignoring b
// for a unary operator. Takes a fixed three arguments (rather than a
// variable count keyed on arity) since a native function only ever
// sees a frame padded out to its declared arity, not the caller's
// actual argument count.
func ApplyOperator(e *Engine, args []Value) (Value, error) {
	if len(args) != 3 {
		return Value{}, &freight.IncorrectArgumentCountError{Min: 3, Max: 3, MaxOK: true, Actual: len(args)}
	}
	name, err := charListToString(args[0])
	if err != nil {
		return Value{}, err
	}
	op, ok := Operators[name]
	if !ok {
		return Errorf("no such operator %q", name), nil
	}
	if unary, isUnary := op.Unary(); isUnary {
		return unary.Apply1(args[1]), nil
	}
	binary, _ := op.Binary()
	return binary.Apply2(args[1], args[2]), nil
}
