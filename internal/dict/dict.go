// Package dict reads typed fields out of decoded YAML/JSON maps.
//
// The map shapes come from yaml.v3 and encoding/json, so numbers may arrive
// as int, int64, float64 or json.Number and nested records as map[string]any
// (or map[any]any from older YAML decoders). Every failure is an
// InvalidError naming the key.
package dict

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/sruq/internal/sruerr"
)

// String returns m[key] as a string. ok is false when the key is absent or
// null.
func String(m map[string]any, key string) (s string, ok bool, err error) {
	v, present := m[key]
	if !present || v == nil {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, sruerr.Invalidf("Field '%s' must be a string, got %T.", key, v)
	}
	return s, true, nil
}

// RequiredString returns m[key] as a string and fails when it is missing.
func RequiredString(m map[string]any, key string) (string, error) {
	s, ok, err := String(m, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", sruerr.Invalidf("Missing required field '%s'.", key)
	}
	return s, nil
}

// Bool returns m[key] as a bool. The strings "true" and "false" are
// accepted in any case.
func Bool(m map[string]any, key string) (b bool, ok bool, err error) {
	v, present := m[key]
	if !present || v == nil {
		return false, false, nil
	}
	switch val := v.(type) {
	case bool:
		return val, true, nil
	case string:
		switch strings.ToLower(val) {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
	}
	return false, false, sruerr.Invalidf("Field '%s' must be true or false, got '%v'.", key, v)
}

// Int returns m[key] as an int. Floats are accepted when integral.
func Int(m map[string]any, key string) (n int, ok bool, err error) {
	v, present := m[key]
	if !present || v == nil {
		return 0, false, nil
	}
	switch val := v.(type) {
	case int:
		return val, true, nil
	case int64:
		return int(val), true, nil
	case float64:
		if val == math.Trunc(val) {
			return int(val), true, nil
		}
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), true, nil
		}
	}
	return 0, false, sruerr.Invalidf("Field '%s' must be an integer, got '%v'.", key, v)
}

// Strings returns m[key] as a list of strings.
func Strings(m map[string]any, key string) ([]string, error) {
	items, err := list(m, key)
	if err != nil || items == nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, sruerr.Invalidf("Field '%s[%d]' must be a string, got %T.", key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// Maps returns m[key] as a list of maps. A missing key yields nil.
func Maps(m map[string]any, key string) ([]map[string]any, error) {
	items, err := list(m, key)
	if err != nil || items == nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		mm, err := AsMap(item)
		if err != nil {
			return nil, fmt.Errorf("field '%s[%d]': %w", key, i, err)
		}
		out = append(out, mm)
	}
	return out, nil
}

// Map returns m[key] as a map. A missing key yields nil.
func Map(m map[string]any, key string) (map[string]any, error) {
	v, present := m[key]
	if !present || v == nil {
		return nil, nil
	}
	mm, err := AsMap(v)
	if err != nil {
		return nil, fmt.Errorf("field '%s': %w", key, err)
	}
	return mm, nil
}

// AsMap converts a decoded value to map[string]any.
func AsMap(v any) (map[string]any, error) {
	switch val := v.(type) {
	case map[string]any:
		return val, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			ks, ok := k.(string)
			if !ok {
				return nil, sruerr.Invalidf("Map key '%v' is not a string.", k)
			}
			out[ks] = elem
		}
		return out, nil
	default:
		return nil, sruerr.Invalidf("Expected a map, got %T.", v)
	}
}

func list(m map[string]any, key string) ([]any, error) {
	v, present := m[key]
	if !present || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case []any:
		return val, nil
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = val[i]
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i := range val {
			out[i] = val[i]
		}
		return out, nil
	default:
		return nil, sruerr.Invalidf("Field '%s' must be a list, got %T.", key, v)
	}
}
