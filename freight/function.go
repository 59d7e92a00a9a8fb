package freight

// functionKind is the dispatch discriminant for FunctionType.
type functionKind uint8

const (
	// FnStatic is a plain function with no captured environment.
	FnStatic functionKind = iota
	// FnCapturingDef is a closure template: it names which variables to
	// capture but is not directly invocable until FunctionCapture turns
	// it into FnCapturingRef.
	FnCapturingDef
	// FnCapturingRef is a fully materialized closure with bound capture
	// cells.
	FnCapturingRef
	// FnNative is a host-implemented function.
	FnNative
)

// FunctionType is the sum over a function's dispatch kind (spec.md §3).
type FunctionType[V Value[V]] struct {
	kind FunctionKind

	// captureSites is set for FnCapturingDef: which environment
	// variable each capture slot should resolve to when materialized.
	captureSites []VariableType

	// captures is set for FnCapturingRef: the pooled, already-resolved
	// capture cells.
	captures Slice[V]

	// native is set for FnNative.
	native NativeFunc[V]
}

// FunctionKind is the exported alias for functionKind, so hosts can
// inspect a FunctionType's dispatch kind (e.g. for diagnostics).
type FunctionKind = functionKind

// Kind reports the dispatch discriminant.
func (ft FunctionType[V]) Kind() FunctionKind { return ft.kind }

// StaticFunction constructs a FunctionType with no captured environment.
func StaticFunction[V Value[V]]() FunctionType[V] {
	return FunctionType[V]{kind: FnStatic}
}

// CapturingDefFunction constructs a closure template over the given
// capture sites.
func CapturingDefFunction[V Value[V]](sites []VariableType) FunctionType[V] {
	return FunctionType[V]{kind: FnCapturingDef, captureSites: sites}
}

// NativeFunction constructs a FunctionType wrapping a host function.
func NativeFunction[V Value[V]](fn NativeFunc[V]) FunctionType[V] {
	return FunctionType[V]{kind: FnNative, native: fn}
}

// FunctionRef is a callable handle: arity, frame size, and dispatch
// kind, sufficient for the engine to invoke the function it names
// without consulting the function body except by index (spec.md §3).
type FunctionRef[V Value[V]] struct {
	ArgCount      ArgCount
	StackSize     int
	Location      int // index into the engine's function table; meaningless for Native
	VariableCount int
	Type          FunctionType[V]
}

// Function is a registered function body: its expression list and the
// return-target id that ReturnTarget/Return expressions inside it
// coordinate through.
type Function[V Value[V]] struct {
	Expressions   []Expression[V]
	ReturnTarget  int
	ArgCount      ArgCount
	VariableCount int
}

// StackSize is the total number of call-frame slots this body needs:
// named argument slots plus locals.
func (f *Function[V]) StackSize() int {
	return f.ArgCount.StackSize() + f.VariableCount
}

// FunctionWriter is the builder for a function body (spec.md §4.4).
type FunctionWriter[V Value[V]] struct {
	argCount      ArgCount
	variableCount int
	expressions   []Expression[V]
	functionType  FunctionType[V]
}

// NewFunctionWriter starts building a plain (Static) function of the
// given arity.
func NewFunctionWriter[V Value[V]](argCount ArgCount) *FunctionWriter[V] {
	return &FunctionWriter[V]{argCount: argCount, functionType: StaticFunction[V]()}
}

// NewCapturingFunctionWriter starts building a closure template: argCount
// is the arity of the eventual closure call, captures names which
// environment variables to capture when FunctionCapture materializes it.
func NewCapturingFunctionWriter[V Value[V]](argCount ArgCount, captures []VariableType) *FunctionWriter[V] {
	return &FunctionWriter[V]{argCount: argCount, functionType: CapturingDefFunction[V](captures)}
}

// SetCaptures converts this writer in place into a closure template.
func (w *FunctionWriter[V]) SetCaptures(captures []VariableType) {
	w.functionType = CapturingDefFunction[V](captures)
}

// CreateVariable reserves a new local slot above the argument region
// and returns its stack offset.
func (w *FunctionWriter[V]) CreateVariable() int {
	v := w.argCount.StackSize() + w.variableCount
	w.variableCount++
	return v
}

// EvaluateExpression appends expr to the function body.
func (w *FunctionWriter[V]) EvaluateExpression(expr Expression[V]) {
	w.expressions = append(w.expressions, expr)
}

// build produces the stored Function body. The body does not record
// the function type, so the caller (Engine.RegisterFunction /
// VMWriter.IncludeFunction) derives the FunctionRef from the writer
// via toRef as well.
func (w *FunctionWriter[V]) build(returnTarget int) Function[V] {
	return Function[V]{
		Expressions:   w.expressions,
		ReturnTarget:  returnTarget,
		ArgCount:      w.argCount,
		VariableCount: w.variableCount,
	}
}

// toRef builds the FunctionRef a registration should hand back,
// pointing at location.
func (w *FunctionWriter[V]) toRef(location int) FunctionRef[V] {
	return FunctionRef[V]{
		ArgCount:      w.argCount,
		StackSize:     w.argCount.StackSize() + w.variableCount,
		Location:      location,
		VariableCount: w.variableCount,
		Type:          w.functionType,
	}
}
