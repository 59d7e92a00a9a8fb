package freight

// VMWriter is a thin front-end that accumulates functions and globals,
// then hands them to a freshly constructed Engine (spec.md §4.6). It
// exists so a host's front-end (parser, bytecode compiler, or — as
// here — a programmatic builder) doesn't need to touch Engine directly
// until it is fully assembled.
type VMWriter[V Value[V]] struct {
	host             Host[V]
	functions        []Function[V]
	numGlobals       int
	nextReturnTarget int
}

// NewVMWriter starts an empty writer for the given host factories.
func NewVMWriter[V Value[V]](host Host[V]) *VMWriter[V] {
	return &VMWriter[V]{host: host}
}

// CreateGlobal reserves a fresh global address.
func (w *VMWriter[V]) CreateGlobal() int {
	addr := w.numGlobals
	w.numGlobals++
	return addr
}

// CreateReturnTarget reserves a fresh return-target id.
func (w *VMWriter[V]) CreateReturnTarget() int {
	id := w.nextReturnTarget
	w.nextReturnTarget++
	return id
}

// IncludeFunction registers writer's built body and returns the
// FunctionRef pointing at it.
func (w *VMWriter[V]) IncludeFunction(fw *FunctionWriter[V], returnTarget int) FunctionRef[V] {
	location := len(w.functions)
	ref := fw.toRef(location)
	w.functions = append(w.functions, fw.build(returnTarget))
	return ref
}

// IncludeNativeFunction returns a Native-kind FunctionRef holding the
// host function directly, with the given arity. No body is added to
// the function table (Location is -1).
func (w *VMWriter[V]) IncludeNativeFunction(fn NativeFunc[V], argCount ArgCount) FunctionRef[V] {
	return FunctionRef[V]{
		ArgCount:  argCount,
		StackSize: argCount.StackSize(),
		Location:  -1,
		Type:      NativeFunction[V](fn),
	}
}

// Finish hands the accumulated functions and globals to a new Engine,
// ready for Call. No entry point is recorded on the engine; the caller
// keeps the FunctionRef it wants to call.
func (w *VMWriter[V]) Finish(ctx any) *Engine[V] {
	e := New[V](w.host, ctx)
	e.functions = w.functions
	e.numGlobals = w.numGlobals
	e.nextReturnTarget = w.nextReturnTarget
	e.ResetGlobals()
	return e
}
