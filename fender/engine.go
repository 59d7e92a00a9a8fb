package fender

import "github.com/fenderlang/freight"

// Engine, FunctionRef, FunctionWriter, and VMWriter are fender's
// concrete instantiations of freight's generic core over Value, so
// callers outside this package never have to spell out the type
// parameter themselves.
type (
	Engine         = freight.Engine[Value]
	FunctionRef    = freight.FunctionRef[Value]
	FunctionWriter = freight.FunctionWriter[Value]
	VMWriter       = freight.VMWriter[Value]
	Expression     = freight.Expression[Value]
)

// Host is fender's freight.Host: Null is the default/zero value, and a
// bare FunctionRef is boxed by wrapping it as a Function value.
func Host() freight.Host[Value] {
	return freight.Host[Value]{
		Zero: Null,
		Box:  Function,
	}
}

// NewEngine constructs a bare engine over fender's host, with ctx as
// its opaque GlobalContext (see context.go).
func NewEngine(ctx *GlobalContext) *Engine {
	return freight.New[Value](Host(), ctx)
}

// NewVMWriter starts a writer pre-bound to fender's host.
func NewVMWriter() *VMWriter {
	return freight.NewVMWriter[Value](Host())
}

// NullConstructor registers and returns a zero-arg function that yields
// Null via the Initialize expression, delegating entirely to
// freight.NopInitializer — the supplemented unit initializer carried
// over from the original source's `impl Initializer for ()`. A host
// constructor this trivial is exactly the case NopInitializer exists
// for: no arguments, no state, just the type system's default value.
func NullConstructor(writer *VMWriter) FunctionRef {
	fw := freight.NewFunctionWriter[Value](freight.Fixed(0))
	fw.EvaluateExpression(freight.Initialize[Value](freight.NopInitializer[Value]{}, nil))
	return writer.IncludeFunction(fw, writer.CreateReturnTarget())
}
