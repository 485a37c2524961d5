package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToMap converts the configuration to a plain nested map. Integers become
// int64, nested records become map[string]any and lists become []any.
func (c *Configuration) ToMap() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal configuration: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode configuration map: %w", err)
	}

	out, err := normalizeNumbers(m)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// FromMap rebuilds a configuration from the map produced by ToMap (or an
// equivalent decoded YAML/JSON document). Unknown keys are rejected.
func FromMap(m map[string]any) (*Configuration, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal configuration map: %w", err)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Configuration, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg Configuration
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return &cfg, nil
}

// normalizeNumbers replaces json.Number leaves with int64.
func normalizeNumbers(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %q in configuration", val.String())
		}
		return n, nil
	case map[string]any:
		for k, elem := range val {
			n, err := normalizeNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[k] = n
		}
		return val, nil
	case []any:
		for i, elem := range val {
			n, err := normalizeNumbers(elem)
			if err != nil {
				return nil, err
			}
			val[i] = n
		}
		return val, nil
	default:
		return v, nil
	}
}
