package defu

import (
	"reflect"
	"sort"

	"github.com/rs/zerolog"
)

// engine holds what a Func closes over. It is never mutated after New returns.
type engine struct {
	merger Merger
	log    zerolog.Logger
}

// merge applies defaults to base and returns a new map:
//   - non-nil leaves from base overwrite defaults
//   - slices on both sides concatenate, base elements first
//   - maps on both sides merge recursively
//   - nil values in base never overwrite a default
//
// A defaults value that is not a plain object is treated as empty.
func (e *engine) merge(base, defaults any, namespace string) map[string]any {
	defaultMap, _ := defaults.(map[string]any)
	result := make(map[string]any, len(defaultMap))
	for k, v := range defaultMap {
		if e.guarded(k, namespace) {
			continue
		}
		result[k] = v
	}

	baseMap, ok := base.(map[string]any)
	if !ok {
		return result
	}

	// Sorted so a Merger sees keys in the same order on every call.
	keys := make([]string, 0, len(baseMap))
	for k := range baseMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if e.guarded(key, namespace) {
			continue
		}

		value := baseMap[key]
		if value == nil {
			continue
		}

		if e.merger != nil && e.merger.Merge(result, key, value, namespace) {
			e.log.Debug().Str("namespace", namespace).Str("key", key).Msg("key handled by merger")
			continue
		}

		existing := result[key]
		switch {
		case IsArray(value) && IsArray(existing):
			result[key] = concat(value, existing)
		case IsPlainObject(value) && IsPlainObject(existing):
			child := childNamespace(namespace, key)
			e.log.Debug().Str("namespace", child).Msg("merging nested object")
			result[key] = e.merge(value, existing, child)
		default:
			result[key] = value
		}
	}

	return result
}

// guarded reports whether key must never be merged into a result.
func (e *engine) guarded(key, namespace string) bool {
	if key != "__proto__" && key != "constructor" {
		return false
	}
	e.log.Debug().Str("namespace", namespace).Str("key", key).Msg("skipping guarded key")
	return true
}

func childNamespace(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + "." + key
}

// concat returns a new slice holding the elements of first followed by those
// of second. Both must satisfy IsArray. When the two slices share a type the
// result keeps it, otherwise it is a []any.
func concat(first, second any) any {
	a, b := reflect.ValueOf(first), reflect.ValueOf(second)

	if a.Type() == b.Type() {
		out := reflect.MakeSlice(a.Type(), 0, a.Len()+b.Len())
		out = reflect.AppendSlice(out, a)
		out = reflect.AppendSlice(out, b)
		return out.Interface()
	}

	out := make([]any, 0, a.Len()+b.Len())
	for i := 0; i < a.Len(); i++ {
		out = append(out, a.Index(i).Interface())
	}
	for i := 0; i < b.Len(); i++ {
		out = append(out, b.Index(i).Interface())
	}
	return out
}
