// internal/app/system/apiclient/body.go
package apiclient

import (
	"bytes"
	"encoding/json"
)

// CleanBody trims whitespace and drops a single stray "c" that some backend
// responses prepend to their JSON.
func CleanBody(b []byte) []byte {
	t := bytes.TrimSpace(b)
	if len(t) > 1 && t[0] == 'c' && (t[1] == '{' || t[1] == '[') {
		return t[1:]
	}
	return t
}

// Unwrap returns the "data" member when b is an object envelope holding one,
// otherwise b itself. Endpoints disagree about wrapping lists.
func Unwrap(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return b
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &env); err != nil || len(env.Data) == 0 {
		return b
	}
	return env.Data
}

// DecodeList decodes a bare array or a {"data": [...]} envelope into out.
// null and empty bodies leave out empty.
func DecodeList[T any](b []byte) ([]T, error) {
	inner := Unwrap(CleanBody(b))
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(inner, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeObject decodes a bare object or a {"data": {...}} envelope into
// out. null and empty bodies leave out untouched.
func DecodeObject(b []byte, out any) error {
	inner := Unwrap(CleanBody(b))
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return nil
	}
	return json.Unmarshal(inner, out)
}

// messageOf pulls a human message out of an error body.
func messageOf(b []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(CleanBody(b), &m); err != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
