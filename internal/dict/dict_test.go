package dict

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sruq/internal/sruerr"
)

func TestString(t *testing.T) {
	m := map[string]any{"a": "x", "n": nil, "i": 3}

	s, ok, err := String(m, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok, err = String(m, "n")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = String(m, "i")
	assert.True(t, sruerr.IsInvalid(err))

	_, err = RequiredString(m, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'missing'")
}

func TestBool(t *testing.T) {
	tests := []struct {
		in      any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"true", true, false},
		{"False", false, false},
		{"yes", false, true},
		{1, false, true},
	}
	for _, tt := range tests {
		b, ok, err := Bool(map[string]any{"k": tt.in}, "k")
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tt.want, b, "%v", tt.in)
	}
}

func TestInt(t *testing.T) {
	for _, in := range []any{5, int64(5), float64(5), json.Number("5")} {
		n, ok, err := Int(map[string]any{"k": in}, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 5, n)
	}

	_, _, err := Int(map[string]any{"k": 5.5}, "k")
	assert.Error(t, err)
	_, _, err = Int(map[string]any{"k": "5"}, "k")
	assert.Error(t, err)
}

func TestMaps(t *testing.T) {
	m := map[string]any{
		"items": []any{
			map[string]any{"a": 1},
			map[any]any{"b": 2},
		},
		"bad": []any{"x"},
	}

	items, err := Maps(m, "items")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1]["b"])

	_, err = Maps(m, "bad")
	assert.Error(t, err)

	items, err = Maps(m, "absent")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestStrings(t *testing.T) {
	out, err := Strings(map[string]any{"k": []any{"a", "b"}}, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	_, err = Strings(map[string]any{"k": []any{"a", 1}}, "k")
	assert.Error(t, err)
}
