package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sruq/internal/sruerr"
)

func mustKey(t *testing.T, xpath string, opts ...KeyOption) *Key {
	t.Helper()
	k, err := NewKey(xpath, opts...)
	require.NoError(t, err)
	return k
}

func TestKey_Format(t *testing.T) {
	tests := []struct {
		name string
		key  *Key
		want string
	}{
		{"xpath only", mustKey(t, "title"), "title"},
		{"ascending", mustKey(t, "title", WithAscending(true)), "title,,1"},
		{"descending", mustKey(t, "test_path", WithAscending(false)), "test_path,,0"},
		{"missing value only", mustKey(t, "test_path", WithMissingValue("omit")), "test_path,,,,omit"},
		{"case sensitive only", mustKey(t, "test_path", WithCaseSensitive(true)), "test_path,,,1"},
		{"schema", mustKey(t, "title", WithSchema("dc"), WithAscending(false)), "title,dc,0"},
		{"all fields", mustKey(t, "test_path",
			WithSchema("test_schema"),
			WithAscending(false),
			WithCaseSensitive(false),
			WithMissingValue("omit")), "test_path,test_schema,0,0,omit"},
		{"quoted literal", mustKey(t, "name", WithSchema("bath"), WithMissingValue(`"zzz"`)), `name,bath,,,"zzz"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Format())
		})
	}
}

func TestNewKey_Errors(t *testing.T) {
	_, err := NewKey("")
	assert.True(t, sruerr.IsInvalid(err))

	_, err = NewKey("title", WithMissingValue("never"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'never'")

	_, err = NewKey("title", WithMissingValue(`"unterminated`))
	assert.Error(t, err)

	_, err = NewKey("title", WithMissingValue("highValue"))
	assert.NoError(t, err)
}

func TestKeys_Format(t *testing.T) {
	keys := Keys{
		mustKey(t, "title", WithSchema("dc"), WithAscending(false)),
		mustKey(t, "name", WithSchema("bath"), WithMissingValue("abort")),
	}

	assert.Equal(t, "&sortKeys=title,dc,0%20name,bath,,,abort", keys.Format())
	assert.Equal(t, "", Keys{}.Format())
}

func TestBy_Format(t *testing.T) {
	by := By{
		{Set: "alma", Name: "title", Order: OrderAscending},
		{Set: "alma", Name: "bib_holding_count", Order: OrderDescending},
	}

	assert.Equal(t,
		"%20sortBy%20alma.title/sort.ascending%20alma.bib_holding_count/sort.descending",
		by.Format())
	assert.Equal(t, "", By(nil).Format())
}

func TestFromMaps_SortKeys(t *testing.T) {
	clause, err := FromMaps([]map[string]any{
		{"type": "sortKey", "xpath": "title", "schema": "dc", "ascending": "false"},
		{"type": "sortKey", "xpath": "name", "schema": "bath", "missing_value": "abort"},
	})
	require.NoError(t, err)

	keys, ok := clause.(Keys)
	require.True(t, ok)
	assert.Equal(t, "&sortKeys=title,dc,0%20name,bath,,,abort", keys.Format())
}

func TestFromMaps_SortBy(t *testing.T) {
	clause, err := FromMaps([]map[string]any{
		{"type": "sort", "index_set": "alma", "index_name": "title", "sort_order": "ascending"},
	})
	require.NoError(t, err)

	assert.Equal(t, By{{Set: "alma", Name: "title", Order: "ascending"}}, clause)
}

func TestFromMaps_Errors(t *testing.T) {
	tests := []struct {
		name    string
		items   []map[string]any
		wantErr string
	}{
		{"mixed styles", []map[string]any{
			{"type": "sort", "index_set": "alma", "index_name": "title", "sort_order": "ascending"},
			{"type": "sortKey", "xpath": "title"},
		}, "cannot be mixed"},
		{"unknown type", []map[string]any{{"type": "order"}}, "'order'"},
		{"missing type", []map[string]any{{"xpath": "title"}}, "'type'"},
		{"missing xpath", []map[string]any{{"type": "sortKey"}}, "'xpath'"},
		{"bad boolean", []map[string]any{{"type": "sortKey", "xpath": "t", "ascending": "up"}}, "'ascending'"},
		{"missing order", []map[string]any{{"type": "sort", "index_set": "alma", "index_name": "title"}}, "'sort_order'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMaps(tt.items)
			require.Error(t, err)
			assert.True(t, sruerr.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromMaps_Empty(t *testing.T) {
	clause, err := FromMaps(nil)
	require.NoError(t, err)
	assert.Nil(t, clause)
}

func TestToMaps_Inverse(t *testing.T) {
	keys := Keys{mustKey(t, "title", WithSchema("dc"), WithAscending(true), WithMissingValue("omit"))}
	back, err := FromMaps(ToMaps(keys))
	require.NoError(t, err)
	assert.Equal(t, keys.Format(), back.Format())

	by := By{{Set: "alma", Name: "title", Order: OrderDescending}}
	back, err = FromMaps(ToMaps(by))
	require.NoError(t, err)
	assert.Equal(t, by, back)
}
