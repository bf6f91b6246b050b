package payload

import "reflect"

// Get evaluates fn and returns fallback if the evaluation panics (missing
// intermediate field, wrong shape) or produces a nil result. The fallback is a
// plain value and is never evaluated lazily, so it cannot fail itself.
func Get[T any](fn func() T, fallback T) (v T) {
	defer func() {
		if recover() != nil {
			v = fallback
		}
	}()
	v = fn()
	if isNil(v) {
		return fallback
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
