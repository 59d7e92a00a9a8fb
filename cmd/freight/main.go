// Command freight runs a small fixed demo program against the fender
// type system, showing off the engine's closures, variadic calls,
// operator introspection, the null constructor, and the
// describe/store_get/store_put builtins — in lieu of a script
// front-end, which this engine core deliberately omits (there is no
// parser to point a CLI at a .fndr file).
package main

import (
	"fmt"
	"os"

	"github.com/fenderlang/freight"
	"github.com/fenderlang/freight/fender"
	"github.com/mattn/go-isatty"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func colorize(code, s string) string {
	if !colorEnabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func heading(s string) string { return colorize("1;36", s) }
func value(s string) string   { return colorize("32", s) }
func fail(s string) string    { return colorize("31", s) }

func main() {
	ctx, err := fender.NewGlobalContext(":memory:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "freight: %s\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	writer := fender.NewVMWriter()

	// add(a, b) = a + b
	addW := freight.NewFunctionWriter[fender.Value](freight.Fixed(2))
	addW.EvaluateExpression(freight.BinaryOpEval[fender.Value](fender.Add,
		freight.Variable[fender.Value](freight.Stack(0)),
		freight.Variable[fender.Value](freight.Stack(1))))
	addRef := writer.IncludeFunction(addW, writer.CreateReturnTarget())

	// makeAdder(n) = |x| x + n
	innerW := freight.NewCapturingFunctionWriter[fender.Value](freight.Fixed(1), []freight.VariableType{freight.Stack(0)})
	innerW.EvaluateExpression(freight.BinaryOpEval[fender.Value](fender.Add,
		freight.Variable[fender.Value](freight.Stack(0)),
		freight.Variable[fender.Value](freight.Captured(0))))
	innerRef := writer.IncludeFunction(innerW, writer.CreateReturnTarget())

	makeAdderW := freight.NewFunctionWriter[fender.Value](freight.Fixed(1))
	makeAdderW.EvaluateExpression(freight.FunctionCapture[fender.Value](innerRef))
	makeAdderRef := writer.IncludeFunction(makeAdderW, writer.CreateReturnTarget())

	// sum(...nums) folds its variadic tail with native code.
	sumRef := writer.IncludeNativeFunction(sumNative, freight.Variadic(0, 0))

	describeRef := writer.IncludeNativeFunction(fender.Describe, freight.Fixed(1))
	storeGetRef := writer.IncludeNativeFunction(fender.StoreGet, freight.Fixed(1))
	storePutRef := writer.IncludeNativeFunction(fender.StorePut, freight.Fixed(2))
	listOperatorsRef := writer.IncludeNativeFunction(fender.ListOperators, freight.Fixed(0))
	applyOperatorRef := writer.IncludeNativeFunction(fender.ApplyOperator, freight.Fixed(3))
	nullRef := fender.NullConstructor(writer)

	engine := writer.Finish(ctx)

	fmt.Println(heading("add(3, 4)"))
	result, err := engine.Call(addRef, []fender.Value{fender.Int(3), fender.Int(4)})
	report(result, err)

	fmt.Println(heading("makeAdder(10)(5)"))
	closure, err := engine.Call(makeAdderRef, []fender.Value{fender.Int(10)})
	if err != nil {
		fmt.Println(fail(err.Error()))
	} else {
		fn, _ := closure.CastToFunction()
		result, err = engine.Call(fn, []fender.Value{fender.Int(5)})
		report(result, err)
	}

	fmt.Println(heading("sum(1, 2, 3, 4, 5)"))
	result, err = engine.Call(sumRef, []fender.Value{fender.Int(1), fender.Int(2), fender.Int(3), fender.Int(4), fender.Int(5)})
	report(result, err)

	key := fender.List([]fender.Value{fender.Int('g'), fender.Int('r'), fender.Int('e'), fender.Int('e'), fender.Int('t'), fender.Int('i'), fender.Int('n'), fender.Int('g')})
	val := fender.List([]fender.Value{fender.Int('h'), fender.Int('i')})
	fmt.Println(heading("store_put(\"greeting\", \"hi\"); store_get(\"greeting\")"))
	if _, err := engine.Call(storePutRef, []fender.Value{key, val}); err != nil {
		fmt.Println(fail(err.Error()))
	}
	result, err = engine.Call(storeGetRef, []fender.Value{key})
	report(result, err)

	fmt.Println(heading("describe(42)"))
	result, err = engine.Call(describeRef, []fender.Value{fender.Int(42)})
	report(result, err)

	fmt.Println(heading("operators()"))
	result, err = engine.Call(listOperatorsRef, nil)
	report(result, err)

	fmt.Println(heading(`apply_operator("*", 6, 7)`))
	result, err = engine.Call(applyOperatorRef, []fender.Value{stringToCharList("*"), fender.Int(6), fender.Int(7)})
	report(result, err)

	fmt.Println(heading(`apply_operator("neg", 9, null)`))
	result, err = engine.Call(applyOperatorRef, []fender.Value{stringToCharList("neg"), fender.Int(9), fender.Null()})
	report(result, err)

	fmt.Println(heading("null()"))
	result, err = engine.Call(nullRef, nil)
	report(result, err)
}

func stringToCharList(s string) fender.Value {
	runes := []rune(s)
	chars := make([]fender.Value, len(runes))
	for i, r := range runes {
		chars[i] = fender.Int(int64(r))
	}
	return fender.List(chars)
}

func sumNative(_ *fender.Engine, args []fender.Value) (fender.Value, error) {
	elems, _ := args[0].AsList()
	sum := fender.Int(0)
	for _, e := range elems {
		sum = fender.Add.Apply2(sum, e)
	}
	return sum, nil
}

func report(v fender.Value, err error) {
	if err != nil {
		fmt.Println(fail(err.Error()))
		return
	}
	fmt.Println(value(v.String()))
}
