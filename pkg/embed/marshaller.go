// Package embed is the high-level embedding facade for host programs
// that want to drive a freight engine over fender's demo type system
// without hand-assembling VMWriter calls themselves, adapted from
// _examples/funvibe-funxy's pkg/embed reflection-based marshaller.
// There is no parser here (freight/fender implement a generic engine
// core, not a language front-end): Go values cross the boundary
// through Marshaller, and callable programs are assembled by Bind-ing
// Go functions as native fender functions.
package embed

import (
	"fmt"
	"reflect"

	"github.com/fenderlang/freight/fender"
)

// Marshaller converts between Go values and fender.Value.
type Marshaller struct{}

// NewMarshaller constructs a Marshaller with no state of its own.
func NewMarshaller() *Marshaller { return &Marshaller{} }

// ToValue converts a Go value into its fender.Value representation.
func (m *Marshaller) ToValue(val interface{}) (fender.Value, error) {
	if val == nil {
		return fender.Null(), nil
	}
	if fv, ok := val.(fender.Value); ok {
		return fv, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fender.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fender.Int(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return fender.Float(v.Float()), nil
	case reflect.Bool:
		return fender.Bool(v.Bool()), nil
	case reflect.String:
		return stringToList(v.String()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	default:
		return fender.Value{}, fmt.Errorf("embed: cannot convert Go value of kind %s to a fender value", v.Kind())
	}
}

// FromValue converts a fender.Value into a Go value, optionally
// coerced toward targetType (nil means "whatever's natural").
func (m *Marshaller) FromValue(v fender.Value, targetType reflect.Type) (interface{}, error) {
	switch v.Kind() {
	case fender.KindInt:
		n, _ := v.AsInt()
		if targetType != nil && targetType.Kind() == reflect.Float64 {
			return float64(n), nil
		}
		if targetType != nil && targetType.Kind() == reflect.Int {
			return int(n), nil
		}
		return n, nil
	case fender.KindFloat:
		f, _ := v.AsFloat()
		return f, nil
	case fender.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case fender.KindList:
		if isCharList(v) && (targetType == nil || targetType.Kind() != reflect.Slice) {
			return listToString(v), nil
		}
		return m.listToSlice(v, targetType)
	case fender.KindNull:
		return nil, nil
	case fender.KindError:
		return nil, fmt.Errorf("embed: fender error value: %s", v.ErrorMessage())
	default:
		return nil, fmt.Errorf("embed: unsupported fender kind for conversion: %s", v.Kind())
	}
}

func stringToList(s string) fender.Value {
	runes := []rune(s)
	chars := make([]fender.Value, len(runes))
	for i, r := range runes {
		chars[i] = fender.Int(int64(r))
	}
	return fender.List(chars)
}

func isCharList(v fender.Value) bool {
	elems, _ := v.AsList()
	for _, e := range elems {
		if e.Kind() != fender.KindInt {
			return false
		}
	}
	return true
}

func listToString(v fender.Value) string {
	elems, _ := v.AsList()
	runes := make([]rune, len(elems))
	for i, e := range elems {
		n, _ := e.AsInt()
		runes[i] = rune(n)
	}
	return string(runes)
}

func (m *Marshaller) sliceToList(v reflect.Value) (fender.Value, error) {
	elements := make([]fender.Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return fender.Value{}, err
		}
		elements[i] = val
	}
	return fender.List(elements), nil
}

func (m *Marshaller) listToSlice(v fender.Value, targetType reflect.Type) (interface{}, error) {
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}
	elems, _ := v.AsList()
	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(elems))
	for _, e := range elems {
		val, err := m.FromValue(e, elemType)
		if err != nil {
			return nil, err
		}
		if val == nil {
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		if rv.Type().AssignableTo(elemType) {
			slice = reflect.Append(slice, rv)
		} else if rv.Type().ConvertibleTo(elemType) {
			slice = reflect.Append(slice, rv.Convert(elemType))
		} else {
			return nil, fmt.Errorf("embed: cannot convert %s to %s", rv.Type(), elemType)
		}
	}
	return slice.Interface(), nil
}
