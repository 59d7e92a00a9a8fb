package freight

// VariableKind distinguishes where a VariableType's address is looked
// up: the current call frame, the current closure's captures, or the
// engine's global table.
type VariableKind uint8

const (
	VarStack VariableKind = iota
	VarCaptured
	VarGlobal
)

// VariableType names a single addressable cell (spec.md §3). The
// offset/index/address is chosen once at build time by whichever
// FunctionWriter or VMWriter call produced it.
type VariableType struct {
	Kind VariableKind
	Addr int
}

// Stack builds a VariableType addressing the current frame at offset.
func Stack(offset int) VariableType { return VariableType{Kind: VarStack, Addr: offset} }

// Captured builds a VariableType addressing the current closure's
// capture slice at index.
func Captured(index int) VariableType { return VariableType{Kind: VarCaptured, Addr: index} }

// Global builds a VariableType addressing the engine's global table at
// address.
func Global(address int) VariableType { return VariableType{Kind: VarGlobal, Addr: address} }

// evalState is the mutable/read-only state threaded through evaluation
// (spec.md §4.5.4): the engine (mutable), the current call frame
// (mutable, to allow AssignStack), and the current captures
// (read-only).
type evalState[V Value[V]] struct {
	engine   *Engine[V]
	stack    []V
	captured []V
}

// Expression is the evaluable tree (spec.md §3). It is pure data; the
// only thing that interprets it is Evaluate/evaluate below.
type Expression[V Value[V]] interface {
	evaluate(st *evalState[V]) (V, error)
}

// RawValue produces v verbatim.
func RawValue[V Value[V]](v V) Expression[V] { return rawValueExpr[V]{v: v} }

type rawValueExpr[V Value[V]] struct{ v V }

func (e rawValueExpr[V]) evaluate(*evalState[V]) (V, error) { return e.v.Clone(), nil }

// Variable produces a reference-duplicated view of the addressed cell.
func Variable[V Value[V]](v VariableType) Expression[V] { return variableExpr[V]{v: v} }

type variableExpr[V Value[V]] struct{ v VariableType }

func (e variableExpr[V]) evaluate(st *evalState[V]) (V, error) {
	switch e.v.Kind {
	case VarCaptured:
		return st.captured[e.v.Addr].DupeRef(), nil
	case VarGlobal:
		return st.engine.globals[e.v.Addr].DupeRef(), nil
	default:
		return st.stack[e.v.Addr].DupeRef(), nil
	}
}

// BinaryOpEval evaluates left then right, then applies op.
func BinaryOpEval[V Value[V]](op BinaryOperator[V], left, right Expression[V]) Expression[V] {
	return binaryOpExpr[V]{op: op, left: left, right: right}
}

type binaryOpExpr[V Value[V]] struct {
	op          BinaryOperator[V]
	left, right Expression[V]
}

func (e binaryOpExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	l, err := e.left.evaluate(st)
	if err != nil {
		return zero, err
	}
	r, err := e.right.evaluate(st)
	if err != nil {
		return zero, err
	}
	return e.op.Apply2(l, r), nil
}

// UnaryOpEval evaluates operand, then applies op.
func UnaryOpEval[V Value[V]](op UnaryOperator[V], operand Expression[V]) Expression[V] {
	return unaryOpExpr[V]{op: op, operand: operand}
}

type unaryOpExpr[V Value[V]] struct {
	op      UnaryOperator[V]
	operand Expression[V]
}

func (e unaryOpExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	v, err := e.operand.evaluate(st)
	if err != nil {
		return zero, err
	}
	return e.op.Apply1(v), nil
}

// Initialize evaluates args left-to-right then delegates to a host
// n-ary initializer with access to the engine.
func Initialize[V Value[V]](init Initializer[V], args []Expression[V]) Expression[V] {
	return initializeExpr[V]{init: init, args: args}
}

type initializeExpr[V Value[V]] struct {
	init Initializer[V]
	args []Expression[V]
}

func (e initializeExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	collected := make([]V, 0, len(e.args))
	for _, arg := range e.args {
		v, err := arg.evaluate(st)
		if err != nil {
			return zero, err
		}
		collected = append(collected, v)
	}
	return e.init.Initialize(collected, st.engine), nil
}

// StaticFunctionCall calls a reference known at build time.
func StaticFunctionCall[V Value[V]](fn FunctionRef[V], args []Expression[V]) Expression[V] {
	return staticCallExpr[V]{fn: fn, args: args}
}

type staticCallExpr[V Value[V]] struct {
	fn   FunctionRef[V]
	args []Expression[V]
}

func (e staticCallExpr[V]) evaluate(st *evalState[V]) (V, error) {
	return evaluateCall(st, e.fn, e.args)
}

// DynamicFunctionCall evaluates target, casts it to a function, and
// calls it.
func DynamicFunctionCall[V Value[V]](target Expression[V], args []Expression[V]) Expression[V] {
	return dynamicCallExpr[V]{target: target, args: args}
}

type dynamicCallExpr[V Value[V]] struct {
	target Expression[V]
	args   []Expression[V]
}

func (e dynamicCallExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	target, err := e.target.evaluate(st)
	if err != nil {
		return zero, err
	}
	fn, ok := target.CastToFunction()
	if !ok {
		return zero, ErrInvalidInvocationTarget
	}
	return evaluateCall(st, fn, e.args)
}

// evaluateCall evaluates args left-to-right into a pooled scratch
// slice, then delegates to Engine.Call — which performs the same
// validation, reference-cell marshaling, and variadic tail collection
// that a top-level call does (spec.md §4.5.4: StaticFunctionCall /
// DynamicFunctionCall route through the same dispatch as §4.5.2).
func evaluateCall[V Value[V]](st *evalState[V], fn FunctionRef[V], args []Expression[V]) (V, error) {
	var zero V
	collected := st.engine.framePool.Request(len(args))
	defer collected.Release()
	for i, arg := range args {
		v, err := arg.evaluate(st)
		if err != nil {
			return zero, err
		}
		collected.Data[i] = v
	}
	return st.engine.Call(fn, collected.Data)
}

// NativeFunctionCall evaluates args into owning clones (native code
// cannot assume alias semantics, per spec.md §9) and calls fn directly.
func NativeFunctionCall[V Value[V]](fn NativeFunc[V], args []Expression[V]) Expression[V] {
	return nativeCallExpr[V]{fn: fn, args: args}
}

type nativeCallExpr[V Value[V]] struct {
	fn   NativeFunc[V]
	args []Expression[V]
}

func (e nativeCallExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	slice := st.engine.framePool.Request(len(e.args))
	defer slice.Release()
	for i, arg := range e.args {
		v, err := arg.evaluate(st)
		if err != nil {
			return zero, err
		}
		slice.Data[i] = v.Clone()
	}
	return e.fn(st.engine, slice.Data)
}

// FunctionCapture materializes a closure: fn must be in CapturingDef
// state. Each capture site resolves to a duplicated reference from the
// current environment, producing a value wrapping a CapturingRef.
func FunctionCapture[V Value[V]](fn FunctionRef[V]) Expression[V] {
	return functionCaptureExpr[V]{fn: fn}
}

type functionCaptureExpr[V Value[V]] struct{ fn FunctionRef[V] }

func (e functionCaptureExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	if e.fn.Type.kind != FnCapturingDef {
		return zero, ErrInvalidInvocationTarget
	}
	sites := e.fn.Type.captureSites
	captures := st.engine.capturePool.FromPoolWithFn(len(sites), func() V { return st.engine.Zero() })
	for i, site := range sites {
		switch site.Kind {
		case VarCaptured:
			captures.Data[i] = st.captured[site.Addr].DupeRef()
		case VarGlobal:
			captures.Data[i] = st.engine.globals[site.Addr].DupeRef()
		default:
			captures.Data[i] = st.stack[site.Addr].DupeRef()
		}
	}
	ref := e.fn
	ref.Type = FunctionType[V]{kind: FnCapturingRef, captures: captures}
	return st.engine.host.Box(ref), nil
}

// AssignStack evaluates rhs, assigns through the current frame's cell
// at offset, and yields the default value.
func AssignStack[V Value[V]](offset int, rhs Expression[V]) Expression[V] {
	return assignStackExpr[V]{offset: offset, rhs: rhs}
}

type assignStackExpr[V Value[V]] struct {
	offset int
	rhs    Expression[V]
}

func (e assignStackExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	val, err := e.rhs.evaluate(st)
	if err != nil {
		return zero, err
	}
	st.stack[e.offset].Assign(val)
	return st.engine.Zero(), nil
}

// AssignGlobal is AssignStack's analog on the engine's global table.
func AssignGlobal[V Value[V]](addr int, rhs Expression[V]) Expression[V] {
	return assignGlobalExpr[V]{addr: addr, rhs: rhs}
}

type assignGlobalExpr[V Value[V]] struct {
	addr int
	rhs  Expression[V]
}

func (e assignGlobalExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	val, err := e.rhs.evaluate(st)
	if err != nil {
		return zero, err
	}
	st.engine.globals[e.addr].Assign(val)
	return st.engine.Zero(), nil
}

// AssignDynamic evaluates lhs (expected to produce a reference cell via
// DupeRef), evaluates rhs, assigns through the lhs cell, and yields the
// default value.
func AssignDynamic[V Value[V]](lhs, rhs Expression[V]) Expression[V] {
	return assignDynamicExpr[V]{lhs: lhs, rhs: rhs}
}

type assignDynamicExpr[V Value[V]] struct{ lhs, rhs Expression[V] }

func (e assignDynamicExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	target, err := e.lhs.evaluate(st)
	if err != nil {
		return zero, err
	}
	target = target.DupeRef()
	val, err := e.rhs.evaluate(st)
	if err != nil {
		return zero, err
	}
	target.Assign(val)
	return st.engine.Zero(), nil
}

// ReturnTargetExpr evaluates body; a Return raised within it aimed at
// target is caught and replaced by the engine's return-value slot.
func ReturnTargetExpr[V Value[V]](target int, body Expression[V]) Expression[V] {
	return returnTargetExpr[V]{target: target, body: body}
}

type returnTargetExpr[V Value[V]] struct {
	target int
	body   Expression[V]
}

func (e returnTargetExpr[V]) evaluate(st *evalState[V]) (V, error) {
	result, err := e.body.evaluate(st)
	if err != nil {
		if asReturnTo(err, e.target) {
			return st.engine.takeReturnValue(), nil
		}
		var zero V
		return zero, err
	}
	return result, nil
}

// ReturnExpr evaluates expr into the engine's return-value slot and
// raises a non-local return aimed at target.
func ReturnExpr[V Value[V]](target int, expr Expression[V]) Expression[V] {
	return returnExpr[V]{target: target, expr: expr}
}

type returnExpr[V Value[V]] struct {
	target int
	expr   Expression[V]
}

func (e returnExpr[V]) evaluate(st *evalState[V]) (V, error) {
	var zero V
	val, err := e.expr.evaluate(st)
	if err != nil {
		return zero, err
	}
	st.engine.returnValue = val
	return zero, &returnSignal{target: e.target}
}
