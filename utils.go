package defu

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrDecode is matched by errors.Is for any document that failed to decode.
	ErrDecode = errors.New("decode failed")
	// ErrEncode is matched by errors.Is when the merged result failed to encode.
	ErrEncode = errors.New("encode failed")
)

// MergeError is returned by the JSON and YAML entry points.
type MergeError struct {
	Op     string // "decode" or "encode"
	Format string // "json" or "yaml"
	Index  int    // position of the offending document, -1 for encode
	Err    error
}

// NewMergeError creates a merge error for the given operation and document.
func NewMergeError(op, format string, index int, err error) *MergeError {
	return &MergeError{Op: op, Format: format, Index: index, Err: err}
}

func (e *MergeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[defu] %s %s: %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("[defu] %s %s document %d: %v", e.Op, e.Format, e.Index, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

func (e *MergeError) Is(target error) bool {
	switch target {
	case ErrDecode:
		return e.Op == "decode"
	case ErrEncode:
		return e.Op == "encode"
	}
	return false
}

// IsPlainObject reports whether v is a map[string]any, the only shape the
// merge descends into. Named map types and maps with other key types are
// treated as opaque values.
func IsPlainObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsArray reports whether v is a slice that the merge concatenates.
// Byte slices of any named type (json.RawMessage, net.IP) are leaves.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8
}
