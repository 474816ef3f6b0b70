// Package defu recursively applies default values to configuration maps.
//
// A merge takes a base map and one or more defaults. Keys missing from the
// base are filled in from the defaults, explicit base values are kept, nested
// map[string]any values are merged key by key and slices are concatenated with
// the base elements first:
//
//	cfg := defu.Defu(
//		map[string]any{"db": map[string]any{"host": "prod"}},
//		map[string]any{"db": map[string]any{"host": "localhost", "port": 5432}},
//	)
//	// cfg == {"db": {"host": "prod", "port": 5432}}
//
// The keys "__proto__" and "constructor" are never merged.
package defu

import "github.com/rs/zerolog"

// Merger can take over the merge of a single key. Merge receives the result
// built so far, the key, the non-nil base value and the dotted namespace of
// the map being merged ("" at the top level). Returning true means the key has
// been handled and the default rules are skipped for it.
type Merger interface {
	Merge(result map[string]any, key string, value any, namespace string) bool
}

// MergerFunc adapts an ordinary function to the Merger interface.
type MergerFunc func(result map[string]any, key string, value any, namespace string) bool

// Merge calls f(result, key, value, namespace).
func (f MergerFunc) Merge(result map[string]any, key string, value any, namespace string) bool {
	return f(result, key, value, namespace)
}

// Func merges any number of objects. Earlier arguments take precedence over
// later ones. Arguments that are not map[string]any count as empty. The
// returned map is always newly allocated and never nil.
type Func func(objects ...any) map[string]any

// Option is a functional option for New.
type Option func(*engine)

// WithLogger sets the logger used to trace merges at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(e *engine) { e.log = l }
}

// New returns a Func that merges with the given Merger. A nil Merger gives the
// standard rules.
func New(m Merger, opts ...Option) Func {
	e := &engine{merger: m, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return func(objects ...any) map[string]any {
		acc := make(map[string]any)
		for _, obj := range objects {
			acc = e.merge(acc, obj, "")
		}
		return acc
	}
}

var (
	// Defu merges with the standard rules.
	Defu = New(nil)

	// DefuFn calls function values found in a base object with the value
	// already present at that key, and stores the result.
	//
	//	DefuFn(map[string]any{"n": func(v any) any { return v.(int) + 1 }}, map[string]any{"n": 1})
	//	// {"n": 2}
	DefuFn = New(FnMerger)

	// DefuArrayFn is DefuFn limited to keys whose current value is a slice.
	DefuArrayFn = New(ArrayFnMerger)
)
