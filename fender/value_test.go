package fender

import "testing"

func TestArithmeticPromotion(t *testing.T) {
	cases := []struct {
		name       string
		a, b       Value
		wantKind   Kind
		wantInt    int64
		wantFloat  float64
	}{
		{"int+int", Int(2), Int(3), KindInt, 5, 0},
		{"float+float", Float(1.5), Float(2.5), KindFloat, 0, 4},
		{"int+float promotes", Int(2), Float(0.5), KindFloat, 0, 2.5},
		{"float+int promotes", Float(0.5), Int(2), KindFloat, 0, 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Add.Apply2(c.a, c.b)
			if got.Kind() != c.wantKind {
				t.Fatalf("expected kind %v, got %v", c.wantKind, got.Kind())
			}
			switch c.wantKind {
			case KindInt:
				n, _ := got.AsInt()
				if n != c.wantInt {
					t.Fatalf("expected %d, got %d", c.wantInt, n)
				}
			case KindFloat:
				f, _ := got.AsFloat()
				if f != c.wantFloat {
					t.Fatalf("expected %v, got %v", c.wantFloat, f)
				}
			}
		})
	}
}

func TestArithmeticMismatchYieldsError(t *testing.T) {
	got := Add.Apply2(Int(1), Bool(true))
	if got.Kind() != KindError {
		t.Fatalf("expected Error, got %v", got.Kind())
	}
}

func TestDivAndModByZeroDoNotPanic(t *testing.T) {
	if got := Div.Apply2(Int(1), Int(0)); got.Kind() != KindInt {
		t.Fatalf("expected a recovered Int, got %v", got.Kind())
	}
	if got := Mod.Apply2(Int(1), Int(0)); got.Kind() != KindInt {
		t.Fatalf("expected a recovered Int, got %v", got.Kind())
	}
}

func TestNegAndBoolNeg(t *testing.T) {
	if n, _ := Neg.Apply1(Int(5)).AsInt(); n != -5 {
		t.Fatalf("expected -5, got %d", n)
	}
	if b, _ := BoolNeg.Apply1(Bool(true)).AsBool(); b != false {
		t.Fatalf("expected false, got %v", b)
	}
	if Neg.Apply1(Bool(true)).Kind() != KindError {
		t.Fatalf("expected Error negating a Bool")
	}
}

func TestAssignIsWriteThroughViaDupeRef(t *testing.T) {
	x := Int(1)
	alias := x.DupeRef()
	x.Assign(Int(42))
	if n, _ := alias.AsInt(); n != 42 {
		t.Fatalf("expected alias to observe assignment, got %d", n)
	}
}

func TestCloneIsDeepForLists(t *testing.T) {
	original := List([]Value{Int(1), Int(2)})
	clone := original.Clone()
	origElems, _ := original.AsList()
	origElems[0].Assign(Int(99))

	cloneElems, _ := clone.AsList()
	if n, _ := cloneElems[0].AsInt(); n != 1 {
		t.Fatalf("expected clone to be unaffected by mutation of the original, got %d", n)
	}
}

func TestTagIsStableAcrossCalls(t *testing.T) {
	v := Int(7)
	first := v.Tag()
	second := v.Tag()
	if first != second {
		t.Fatalf("expected stable tag, got %q then %q", first, second)
	}
}

func TestCastToFunction(t *testing.T) {
	ref := FunctionRef{}
	fn := Function(ref)
	if _, ok := fn.CastToFunction(); !ok {
		t.Fatalf("expected Function value to cast")
	}
	if _, ok := Int(1).CastToFunction(); ok {
		t.Fatalf("expected Int value to not cast to a function")
	}
}
