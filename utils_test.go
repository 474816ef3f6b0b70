package defu

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPlainObject(t *testing.T) {
	var nilMap map[string]any

	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{"literal map", map[string]any{"a": 1}, true},
		{"empty map", map[string]any{}, true},
		{"nil typed map", nilMap, true},
		{"nil", nil, false},
		{"slice", []any{1}, false},
		{"named map", namedMap{"a": 1}, false},
		{"other key type", map[any]any{"a": 1}, false},
		{"string values", map[string]string{"a": "b"}, false},
		{"time", time.Now(), false},
		{"pointer to map", &map[string]any{}, false},
		{"struct", struct{ A int }{1}, false},
		{"string", "str", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPlainObject(tt.input))
		})
	}
}

func TestIsArray(t *testing.T) {
	assert.True(t, IsArray([]any{}))
	assert.True(t, IsArray([]string{"a"}))
	assert.True(t, IsArray([]map[string]any{}))
	assert.False(t, IsArray(nil))
	assert.False(t, IsArray([]byte("x")))
	assert.False(t, IsArray(json.RawMessage(`{"x":1}`)))
	assert.False(t, IsArray(net.ParseIP("10.0.0.1")))
	assert.False(t, IsArray([2]int{1, 2}))
	assert.False(t, IsArray("str"))
	assert.False(t, IsArray(map[string]any{}))
}

func TestMergeError(t *testing.T) {
	cause := errors.New("boom")

	decodeErr := NewMergeError("decode", "yaml", 2, cause)
	assert.Equal(t, "[defu] decode yaml document 2: boom", decodeErr.Error())
	assert.ErrorIs(t, decodeErr, ErrDecode)
	assert.ErrorIs(t, decodeErr, cause)
	assert.NotErrorIs(t, decodeErr, ErrEncode)

	encodeErr := NewMergeError("encode", "json", -1, cause)
	assert.Equal(t, "[defu] encode json: boom", encodeErr.Error())
	assert.ErrorIs(t, encodeErr, ErrEncode)
}
