package freight

// Engine is the entry point that owns functions, globals, and pools,
// and orchestrates calls (spec.md §3/§4.5). It is exclusively owned by
// one goroutine at a time: the evaluator is re-entrant on the same
// engine only via nested calls from within that single call stack
// (spec.md §5).
type Engine[V Value[V]] struct {
	host Host[V]

	numGlobals       int
	globals          []V
	functions        []Function[V]
	nextReturnTarget int
	returnValue      V

	framePool   *Pool[V]
	capturePool *Pool[V]

	// Context is the host-supplied global context, opaque to the core
	// (spec.md §3's GlobalContext). Store whatever the host's native
	// functions need (a database handle, a module cache, ...).
	Context any
}

// New creates an engine with no functions or globals registered yet.
// host.Zero and host.Box must both be non-nil.
func New[V Value[V]](host Host[V], ctx any) *Engine[V] {
	return &Engine[V]{
		host:        host,
		framePool:   NewPool[V](0),
		capturePool: NewPool[V](0),
		Context:     ctx,
	}
}

// Zero produces a fresh default/uninitialized value via the host's
// factory.
func (e *Engine[V]) Zero() V { return e.host.Zero() }

// CreateGlobal appends an uninitialized reference cell to the globals
// table and returns its address. Addresses are handed out
// monotonically and never reused (spec.md §3 invariants).
func (e *Engine[V]) CreateGlobal() int {
	addr := e.numGlobals
	e.numGlobals++
	if len(e.globals) < e.numGlobals {
		e.globals = append(e.globals, e.Zero())
	}
	return addr
}

// SetGlobal assigns value through the cell at addr, visible to every
// DupeRef taken from that global afterward. Hosts use this to seed
// bindings before running any program that reads them.
func (e *Engine[V]) SetGlobal(addr int, value V) {
	e.globals[addr].Assign(value)
}

// ResetGlobals re-populates the globals table with numGlobals fresh
// uninitialized cells, discarding any prior values.
func (e *Engine[V]) ResetGlobals() {
	e.globals = make([]V, e.numGlobals)
	for i := range e.globals {
		e.globals[i] = e.Zero()
	}
}

// CreateReturnTarget returns a fresh, engine-unique return target id.
func (e *Engine[V]) CreateReturnTarget() int {
	id := e.nextReturnTarget
	e.nextReturnTarget++
	return id
}

// RegisterFunction appends writer's built body to the function table
// and returns a FunctionRef pointing at the new entry.
func (e *Engine[V]) RegisterFunction(writer *FunctionWriter[V], returnTarget int) FunctionRef[V] {
	location := len(e.functions)
	ref := writer.toRef(location)
	e.functions = append(e.functions, writer.build(returnTarget))
	return ref
}

// takeReturnValue takes and clears the engine's single shared
// return-value register (spec.md §9: nested Return signals rely on the
// signal reaching its ReturnTarget before anything else clobbers the
// slot; the evaluator's strict left-to-right, catch-immediately
// structure guarantees this).
func (e *Engine[V]) takeReturnValue() V {
	v := e.returnValue
	var zero V
	e.returnValue = zero
	return v
}

// Call validates arg count, marshals args into a pooled frame, and
// dispatches by the reference's function kind (spec.md §4.5.2). args
// must have exactly known length.
func (e *Engine[V]) Call(fn FunctionRef[V], args []V) (V, error) {
	var zero V
	if !fn.ArgCount.ValidArgCount(len(args)) {
		return zero, newArgCountError(fn.ArgCount, len(args))
	}

	frame := e.framePool.Request(fn.StackSize)
	defer frame.Release()

	maxCapped := fn.ArgCount.MaxCapped()
	named := len(args)
	if fn.ArgCount.IsVariadic() && named > maxCapped {
		named = maxCapped
	}
	for i := 0; i < named; i++ {
		frame.Data[i] = args[i].IntoRef()
	}
	if fn.ArgCount.IsVariadic() {
		var tailVals []V
		if len(args) > maxCapped {
			tail := args[maxCapped:]
			tailVals = make([]V, len(tail))
			for i, v := range tail {
				tailVals[i] = v.IntoRef()
			}
		}
		frame.Data[maxCapped] = e.Zero().GenList(tailVals)
		for i := maxCapped + 1; i < len(frame.Data); i++ {
			frame.Data[i] = e.Zero()
		}
	} else {
		for i := named; i < len(frame.Data); i++ {
			frame.Data[i] = e.Zero()
		}
	}

	return e.dispatch(fn, frame.Data)
}

// dispatch runs fn's body against an already-marshaled frame, without
// any further arity validation (used by both Call and the
// StaticFunctionCall/DynamicFunctionCall expression evaluators, which
// marshal their own frames).
func (e *Engine[V]) dispatch(fn FunctionRef[V], frame []V) (V, error) {
	var zero V
	switch fn.Type.kind {
	case FnNative:
		return fn.Type.native(e, frame)
	case FnCapturingRef:
		return e.callBody(fn.Location, frame, fn.Type.captures.Data)
	case FnStatic:
		return e.callBody(fn.Location, frame, nil)
	default: // FnCapturingDef
		return zero, ErrInvalidInvocationTarget
	}
}

// callBody runs the stored function body at location (spec.md §4.5.3):
// evaluate each expression in order; a Return raised by a non-final
// expression and aimed at this body's return target yields the
// engine's return-value slot immediately without evaluating the rest.
func (e *Engine[V]) callBody(location int, frame []V, captured []V) (V, error) {
	var zero V
	fn := &e.functions[location]
	st := &evalState[V]{engine: e, stack: frame, captured: captured}

	if len(fn.Expressions) == 0 {
		return zero, nil
	}
	for _, expr := range fn.Expressions[:len(fn.Expressions)-1] {
		_, err := expr.evaluate(st)
		if err != nil {
			if asReturnTo(err, fn.ReturnTarget) {
				return e.takeReturnValue(), nil
			}
			return zero, err
		}
	}
	last := fn.Expressions[len(fn.Expressions)-1]
	result, err := last.evaluate(st)
	if err != nil {
		if asReturnTo(err, fn.ReturnTarget) {
			return e.takeReturnValue(), nil
		}
		return zero, err
	}
	return result, nil
}

// Evaluate evaluates expr at the top level, with an empty stack and
// empty captures (spec.md §6).
func (e *Engine[V]) Evaluate(expr Expression[V]) (V, error) {
	st := &evalState[V]{engine: e, stack: nil, captured: nil}
	return expr.evaluate(st)
}
