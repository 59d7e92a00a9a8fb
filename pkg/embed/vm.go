package embed

import (
	"fmt"
	"reflect"

	"github.com/fenderlang/freight"
	"github.com/fenderlang/freight/fender"
)

// VM is the high-level embedding handle: a VMWriter under construction,
// which Finish assembles into a running fender.Engine. Once built,
// further Bind calls are rejected (functions added through Writer()
// afterward do not reach the built engine) — mirrors funxy's
// embed.VM except with VMWriter's program-assembly API standing in for
// a parser front-end that this engine core deliberately omits.
type VM struct {
	writer     *fender.VMWriter
	marshaller *Marshaller
	globals    map[string]int
	pending    map[string]fender.Value
	engine     *fender.Engine
}

// New starts an embedding session with a fresh writer.
func New() *VM {
	return &VM{
		writer:     fender.NewVMWriter(),
		marshaller: NewMarshaller(),
		globals:    make(map[string]int),
		pending:    make(map[string]fender.Value),
	}
}

// Writer exposes the underlying VMWriter for hosts that want to
// assemble fender functions directly (FunctionWriter, capture sites,
// return targets) rather than only binding Go callables.
func (v *VM) Writer() *fender.VMWriter { return v.writer }

// Bind registers a Go value or function under name as a global,
// materialized once Build runs. Functions are wrapped as fender native
// functions via reflection; anything else is marshalled once as a
// plain value.
func (v *VM) Bind(name string, val interface{}) error {
	if v.engine != nil {
		return fmt.Errorf("embed: cannot Bind %q after Build", name)
	}
	fv, err := v.toGlobalValue(name, val)
	if err != nil {
		return err
	}
	addr, ok := v.globals[name]
	if !ok {
		addr = v.writer.CreateGlobal()
		v.globals[name] = addr
	}
	v.pending[name] = fv
	return nil
}

func (v *VM) toGlobalValue(name string, val interface{}) (fender.Value, error) {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Func {
		return v.marshaller.ToValue(val)
	}
	native, argCount := wrapGoFunc(v.marshaller, name, rv)
	ref := v.writer.IncludeNativeFunction(native, argCount)
	return fender.Function(ref), nil
}

// wrapGoFunc adapts a reflect.Value over a Go func into a
// freight.NativeFunc over fender.Value, with a Fixed arity matching the
// Go function's (non-variadic) parameter count.
func wrapGoFunc(m *Marshaller, name string, fn reflect.Value) (freight.NativeFunc[fender.Value], freight.ArgCount) {
	t := fn.Type()
	numIn := t.NumIn()
	native := func(_ *fender.Engine, args []fender.Value) (fender.Value, error) {
		goArgs := make([]reflect.Value, numIn)
		for i := 0; i < numIn; i++ {
			val, err := m.FromValue(args[i], t.In(i))
			if err != nil {
				return fender.Value{}, fmt.Errorf("embed: binding %q argument %d: %w", name, i, err)
			}
			if val == nil {
				goArgs[i] = reflect.Zero(t.In(i))
			} else {
				goArgs[i] = reflect.ValueOf(val)
			}
		}
		results := fn.Call(goArgs)
		if len(results) == 0 {
			return fender.Null(), nil
		}
		return m.ToValue(results[0].Interface())
	}
	return native, freight.Fixed(numIn)
}

// Build finalizes the writer into a running engine bound to ctx, and
// seeds every Bind-ed global. Build may be called only once.
func (v *VM) Build(ctx *fender.GlobalContext) (*fender.Engine, error) {
	if v.engine != nil {
		return nil, fmt.Errorf("embed: VM already built")
	}
	engine := v.writer.Finish(ctx)
	for name, addr := range v.globals {
		engine.SetGlobal(addr, v.pending[name])
	}
	v.engine = engine
	return engine, nil
}

// Call invokes a bound global by name as a function, marshaling args
// in and the result back out. The VM must already be built.
func (v *VM) Call(name string, args ...interface{}) (interface{}, error) {
	if v.engine == nil {
		return nil, fmt.Errorf("embed: Call before Build")
	}
	if _, ok := v.globals[name]; !ok {
		return nil, fmt.Errorf("embed: no binding named %q", name)
	}
	fv := v.pending[name]
	fnRef, ok := fv.CastToFunction()
	if !ok {
		return nil, fmt.Errorf("embed: binding %q is not callable", name)
	}

	fenderArgs := make([]fender.Value, len(args))
	for i, a := range args {
		fv, err := v.marshaller.ToValue(a)
		if err != nil {
			return nil, err
		}
		fenderArgs[i] = fv
	}

	result, err := v.engine.Call(fnRef, fenderArgs)
	if err != nil {
		return nil, err
	}
	return v.marshaller.FromValue(result, nil)
}
