package defu

import "reflect"

// Resolver computes a value from the one already merged at the same key.
// DefuFn and DefuArrayFn call base values of this shape instead of storing
// them. Any func with one parameter and one result works the same way; the
// named type is only a convenience.
type Resolver func(current any) any

// FnMerger calls a callable base value with the value already present at the
// key and stores its result. Keys missing from the result are left to the
// standard rules.
var FnMerger = MergerFunc(func(result map[string]any, key string, value any, _ string) bool {
	current, ok := result[key]
	if !ok {
		return false
	}
	return resolveInto(result, key, value, current)
})

// ArrayFnMerger is FnMerger restricted to keys whose current value is a slice.
var ArrayFnMerger = MergerFunc(func(result map[string]any, key string, value any, _ string) bool {
	current := result[key]
	if !IsArray(current) {
		return false
	}
	return resolveInto(result, key, value, current)
})

func resolveInto(result map[string]any, key string, value, current any) bool {
	fn, ok := asResolver(value, current)
	if !ok {
		return false
	}
	result[key] = fn(current)
	return true
}

// asResolver returns value as a func(any) any if it can be called with arg.
// Funcs of other signatures, or whose parameter does not accept arg, are not
// resolvers and get stored like any other leaf.
func asResolver(value, arg any) (func(any) any, bool) {
	switch fn := value.(type) {
	case nil:
		return nil, false
	case func(any) any:
		return fn, fn != nil
	case Resolver:
		return fn, fn != nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	ft := rv.Type()
	if ft.NumIn() != 1 || ft.NumOut() != 1 || ft.IsVariadic() {
		return nil, false
	}
	in := ft.In(0)
	if arg != nil && !reflect.TypeOf(arg).AssignableTo(in) {
		return nil, false
	}

	return func(current any) any {
		argv := reflect.Zero(in)
		if current != nil {
			argv = reflect.ValueOf(current)
		}
		return rv.Call([]reflect.Value{argv})[0].Interface()
	}, true
}
