// Text decoding and resolution transforms.
//
// decodeText turns a byte-exact slice of the stream back into text. A split
// at a declared length can land inside a multi-byte character; the torn
// bytes become U+FFFD rather than invalid UTF-8 leaking into the table.
//
// Transforms post-process a resolved value. DecodeJSON decodes into a
// caller type; Nested decodes into generic values and also expands string
// fields that hold JSON documents of their own, which the stream produces
// whenever a pointer to an object row is substituted inside a string.
package flight

import (
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"golang.org/x/text/encoding/unicode"
)

func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// Transform converts a resolved value into a caller-chosen type.
type Transform[T any] func(string) (T, error)

// DecodeJSON returns a Transform that unmarshals the resolved value into T.
func DecodeJSON[T any]() Transform[T] {
	return func(s string) (T, error) {
		var v T
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return v, err
		}
		return v, nil
	}
}

// Nested decodes s as JSON and recursively replaces every string that
// itself holds a JSON object or array with its decoded form. Strings that
// merely look like scalars ("1", "true") are left as strings.
func Nested(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return expand(v), nil
}

func expand(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = expand(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = expand(e)
		}
		return t
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
			return t
		}
		var inner any
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return t
		}
		return expand(inner)
	default:
		return v
	}
}
