package condition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maraichr/iypquery/pkg/qerr"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestFromMap_Equality(t *testing.T) {
	c, err := FromMap(decode(t, `{"as.asn": 15169}`))
	require.NoError(t, err)
	assert.Equal(t, Q("as.asn").Eq(int64(15169)), c)
}

func TestFromMap_OperatorMap(t *testing.T) {
	c, err := FromMap(decode(t, `{"peer_count": {">": 50}}`))
	require.NoError(t, err)
	assert.Equal(t, Q("peer_count").Gt(int64(50)), c)

	c, err = FromMap(decode(t, `{"x": {"<": 10, ">": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, And{Q("x").Lt(int64(10)), Q("x").Gt(int64(1))}, c)
}

func TestFromMap_Nested(t *testing.T) {
	raw := `{
		"AND": [
			{"country": "US"},
			{"OR": [
				{"tier": 1},
				{"AND": [
					{"peer_count": {">": 50}},
					{"customer_count": {">": 100}}
				]}
			]}
		]
	}`
	c, err := FromMap(decode(t, raw))
	require.NoError(t, err)

	text, params := render(t, c)
	assert.Equal(t,
		"(country = $param_0) AND ((tier = $param_1) OR ((peer_count > $param_2) AND (customer_count > $param_3)))",
		text)
	assert.Equal(t, "US", params["param_0"])
	assert.Equal(t, int64(100), params["param_3"])
}

func TestFromMap_NotAndNullChecks(t *testing.T) {
	c, err := FromMap(decode(t, `{"NOT": {"as.name": {"is_null": true}}}`))
	require.NoError(t, err)
	text, _ := render(t, c)
	assert.Equal(t, "NOT (as.name IS NULL)", text)

	c, err = FromMap(decode(t, `{"as.name": {"is_null": false}}`))
	require.NoError(t, err)
	assert.Equal(t, Q("as.name").IsNotNull(), c)
}

func TestFromMap_ListsAndFloats(t *testing.T) {
	c, err := FromMap(decode(t, `{"c.country_code": {"in": ["US", "JP"]}, "r.rank": {"<": 0.5}}`))
	require.NoError(t, err)
	assert.Equal(t, And{
		Q("c.country_code").In([]any{"US", "JP"}),
		Q("r.rank").Lt(0.5),
	}, c)
}

func TestFromMap_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code qerr.Code
	}{
		{"unknown operator", `{"x": {"like": "a"}}`, qerr.CodeUnknownOperator},
		{"empty", `{}`, qerr.CodeInvalidCondition},
		{"logical with siblings", `{"AND": [], "x": 1}`, qerr.CodeInvalidCondition},
		{"and not list", `{"AND": {"x": 1}}`, qerr.CodeInvalidCondition},
		{"not not map", `{"NOT": [1]}`, qerr.CodeInvalidCondition},
		{"and element not map", `{"OR": [1]}`, qerr.CodeInvalidCondition},
		{"nested list", `{"x": {"in": [[1]]}}`, qerr.CodeInvalidCondition},
		{"object value", `{"x": {"=": {"a": 1}}}`, qerr.CodeInvalidCondition},
		{"null value", `{"x": null}`, qerr.CodeInvalidCondition},
		{"bad field", `{"x)--": 1}`, qerr.CodeInvalidField},
		{"is_null non bool", `{"x": {"is_null": 1}}`, qerr.CodeInvalidCondition},
		{"empty op map", `{"x": {}}`, qerr.CodeInvalidCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(decode(t, tt.raw))
			assert.Equal(t, tt.code, qerr.CodeOf(err), "err = %v", err)
		})
	}
}

func TestFromMap_EmptyLogicalUsesIdentity(t *testing.T) {
	c, err := FromMap(decode(t, `{"OR": []}`))
	require.NoError(t, err)
	text, _ := render(t, c)
	assert.Equal(t, "false", text)
}
