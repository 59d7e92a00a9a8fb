package freight

// Value is the contract a host's value representation must satisfy to
// be driven by this engine (spec.md §3/§6). V is the host's own
// concrete value type, which implements Value[V] over itself — the
// same self-referencing-generic shape Rust expresses as
// `trait Value { type TS: TypeSystem<Value = Self>; }`.
type Value[V any] interface {
	// Clone performs a deep copy (Rust: deep_clone).
	Clone() V

	// DupeRef returns a second handle to the same underlying cell: a
	// write through either handle (via Assign) must be observed by the
	// other. For a plain (non-cell) value this may simply be Clone.
	DupeRef() V

	// IntoRef materializes the value as a reference cell, so that a
	// later Assign through any DupeRef of the result is observed by
	// whoever holds this handle too.
	IntoRef() V

	// Assign stores newValue into the underlying cell this value
	// addresses, visible through every DupeRef of that cell.
	Assign(newValue V)

	// CastToFunction returns the function reference this value holds,
	// if it is callable.
	CastToFunction() (FunctionRef[V], bool)

	// GenList builds a list value from a finite sequence of elements.
	// Only exercised when a FunctionRef uses Variadic arity; a host
	// that never declares variadic functions may implement this as a
	// panic (see ArgCount's doc comment on the variadic_functions
	// config flag).
	GenList(elems []V) V
}

// UnaryOperator applies a host-defined unary operation to a value.
type UnaryOperator[V any] interface {
	Apply1(v V) V
}

// BinaryOperator applies a host-defined binary operation to two values.
type BinaryOperator[V any] interface {
	Apply2(a, b V) V
}

// Initializer is an n-ary host-defined constructor with access to the
// running engine (e.g. to allocate globals or inspect context).
type Initializer[V Value[V]] interface {
	Initialize(args []V, engine *Engine[V]) V
}

// NopInitializer is the supplemented zero-arg initializer carried over
// from the Rust source's `impl Initializer for ()`: it ignores its
// arguments and yields the type system's default value.
type NopInitializer[V Value[V]] struct{}

func (NopInitializer[V]) Initialize(_ []V, engine *Engine[V]) V {
	return engine.Zero()
}

// NativeFunc is a host-implemented function body invoked directly with
// an argument slice, bypassing the expression evaluator.
type NativeFunc[V Value[V]] func(engine *Engine[V], args []V) (V, error)

// operatorKind distinguishes the two Operator variants.
type operatorKind uint8

const (
	operatorUnary operatorKind = iota
	operatorBinary
)

// Operator is the supplemented sum type over "some operator of unknown
// arity" from the Rust source's operators.rs, useful for introspection
// or debug tooling that wants to hold either kind uniformly.
type Operator[V any] struct {
	kind   operatorKind
	unary  UnaryOperator[V]
	binary BinaryOperator[V]
}

// UnaryOp wraps a UnaryOperator as an Operator.
func UnaryOp[V any](op UnaryOperator[V]) Operator[V] {
	return Operator[V]{kind: operatorUnary, unary: op}
}

// BinaryOp wraps a BinaryOperator as an Operator.
func BinaryOp[V any](op BinaryOperator[V]) Operator[V] {
	return Operator[V]{kind: operatorBinary, binary: op}
}

// IsUnary reports whether this Operator wraps a UnaryOperator.
func (o Operator[V]) IsUnary() bool { return o.kind == operatorUnary }

// Unary returns the wrapped UnaryOperator, if any.
func (o Operator[V]) Unary() (UnaryOperator[V], bool) {
	return o.unary, o.kind == operatorUnary
}

// Binary returns the wrapped BinaryOperator, if any.
func (o Operator[V]) Binary() (BinaryOperator[V], bool) {
	return o.binary, o.kind == operatorBinary
}

// Host bundles the two value-construction factories the core needs but
// cannot express through the Value[V] interface alone, since Go has no
// equivalent of Rust's `Default::default()` or `From<FunctionRef>`
// associated functions callable without an existing instance.
type Host[V Value[V]] struct {
	// Zero produces a fresh default/uninitialized value. Must not
	// alias any previously produced value (each call is a new cell).
	Zero func() V

	// Box wraps a FunctionRef as a value, used when materializing a
	// closure (FunctionCapture) or registering a function the host
	// wants to hand back as a callable value.
	Box func(FunctionRef[V]) V
}
