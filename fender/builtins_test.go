package fender

import (
	"errors"
	"testing"

	"github.com/fenderlang/freight"
)

func TestListOperatorsReportsArity(t *testing.T) {
	result, err := ListOperators(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems, ok := result.AsList()
	if !ok {
		t.Fatalf("expected a List, got %v", result.Kind())
	}
	if len(elems) != len(Operators) {
		t.Fatalf("expected %d entries, got %d", len(Operators), len(elems))
	}
	found := false
	for _, e := range elems {
		s, err := charListToString(e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == "neg:unary" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find neg:unary among %v", elems)
	}
}

func TestApplyOperatorDispatchesBinaryAndUnary(t *testing.T) {
	mul, err := ApplyOperator(nil, []Value{List(stringToCharList("*")), Int(6), Int(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := mul.AsInt(); n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}

	neg, err := ApplyOperator(nil, []Value{List(stringToCharList("neg")), Int(9), Null()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := neg.AsInt(); n != -9 {
		t.Fatalf("expected -9, got %d", n)
	}

	unknown, err := ApplyOperator(nil, []Value{List(stringToCharList("?")), Int(1), Int(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown.Kind() != KindError {
		t.Fatalf("expected Error for an unknown operator, got %v", unknown.Kind())
	}
}

func TestNullConstructorYieldsNull(t *testing.T) {
	writer := NewVMWriter()
	ref := NullConstructor(writer)
	engine := writer.Finish(nil)

	result, err := engine.Call(ref, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind() != KindNull {
		t.Fatalf("expected Null, got %v", result.Kind())
	}
}

func TestApplyOperatorRejectsWrongArgCount(t *testing.T) {
	_, err := ApplyOperator(nil, []Value{List(stringToCharList("+"))})
	var argErr *freight.IncorrectArgumentCountError
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.As(err, &argErr) {
		t.Fatalf("expected IncorrectArgumentCountError, got %v", err)
	}
}
