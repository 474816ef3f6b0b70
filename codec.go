package defu

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// JSON decodes each document, merges them with f and returns the merged
// result encoded as JSON. Empty documents count as {}.
func (f Func) JSON(docs ...[]byte) ([]byte, error) {
	objects := make([]any, len(docs))
	for i, doc := range docs {
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, NewMergeError("decode", "json", i, err)
		}
		objects[i] = v
	}

	out, err := json.Marshal(f(objects...))
	if err != nil {
		return nil, NewMergeError("encode", "json", -1, err)
	}
	return out, nil
}

// YAML is JSON for YAML documents. Mappings with non-string keys are
// converted so that they merge like any other map.
func (f Func) YAML(docs ...[]byte) ([]byte, error) {
	objects := make([]any, len(docs))
	for i, doc := range docs {
		var v any
		if err := yaml.Unmarshal(doc, &v); err != nil {
			return nil, NewMergeError("decode", "yaml", i, err)
		}
		objects[i] = normalizeYAML(v)
	}

	out, err := marshalYAML(f(objects...))
	if err != nil {
		return nil, NewMergeError("encode", "yaml", -1, err)
	}
	return out, nil
}

// marshalYAML turns the panics yaml.Marshal raises for unsupported types,
// such as funcs and channels, into errors.
func marshalYAML(v any) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return yaml.Marshal(v)
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	}
	return v
}
