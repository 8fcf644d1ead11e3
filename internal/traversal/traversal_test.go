package traversal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maraichr/iypquery/internal/schema"
	"github.com/maraichr/iypquery/internal/validate"
	"github.com/maraichr/iypquery/pkg/qerr"
)

func session(t *testing.T, root string, kind schema.NodeKind) *validate.Validator {
	t.Helper()
	v := validate.New()
	require.NoError(t, v.RegisterAlias(root, kind))
	return v
}

func TestExpand_Directions(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{Out, "(a)-[:DEPENDS_ON]->(u:AS)"},
		{In, "(u:AS)-[:DEPENDS_ON]->(a)"},
		{Both, "(a)-[:DEPENDS_ON]-(u:AS)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			v := session(t, "a", schema.AS)
			pattern, alias, err := Expand(v, "a", Step{
				Relationship: schema.DependsOn, Direction: tt.dir, Target: schema.AS, Alias: "u",
			}, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pattern)
			assert.Equal(t, "u", alias)
		})
	}
}

func TestExpand_VariableLength(t *testing.T) {
	v := session(t, "a", schema.AS)
	pattern, _, err := Expand(v, "a", Step{Relationship: schema.DependsOn, Target: schema.AS, Alias: "u", Hops: 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, "(a)-[:DEPENDS_ON*1..2]->(u:AS)", pattern)

	_, _, err = Expand(v, "a", Step{Relationship: schema.DependsOn, Hops: MaxHops + 1}, 1)
	assert.True(t, qerr.HasCode(err, qerr.CodeInvalidBound))
	_, _, err = Expand(v, "a", Step{Relationship: schema.DependsOn, Hops: -1}, 1)
	assert.True(t, qerr.HasCode(err, qerr.CodeInvalidBound))
}

func TestExpand_AutoAliases(t *testing.T) {
	v := session(t, "as", schema.AS)

	_, alias, err := Expand(v, "as", Step{Relationship: schema.DependsOn, Target: schema.AS}, 0)
	require.NoError(t, err)
	assert.Equal(t, "as_1", alias)

	_, alias, err = Expand(v, "as", Step{Relationship: schema.PeersWith, Target: schema.AS}, 1)
	require.NoError(t, err)
	assert.Equal(t, "as_2", alias)

	pattern, alias, err := Expand(v, "as", Step{Relationship: schema.ExternalID}, 2)
	require.NoError(t, err)
	assert.Equal(t, "node_2", alias)
	assert.Equal(t, "(as)-[:EXTERNAL_ID]->(node_2)", pattern)

	assert.Equal(t, []string{"as", "as_1", "as_2", "node_2"}, v.Aliases())
}

func TestExpand_Errors(t *testing.T) {
	v := session(t, "a", schema.AS)

	_, _, err := Expand(v, "missing", Step{Relationship: schema.DependsOn}, 0)
	assert.True(t, qerr.HasCode(err, qerr.CodeUnknownSourceAlias))

	_, _, err = Expand(v, "a", Step{Relationship: schema.DependsOn, Target: schema.AS, Alias: "a"}, 0)
	assert.True(t, qerr.HasCode(err, qerr.CodeDuplicateAlias))

	_, _, err = Expand(v, "a", Step{Relationship: schema.DependsOn, Direction: "sideways"}, 0)
	assert.True(t, qerr.HasCode(err, qerr.CodeInvalidDirection))
}

func TestExpand_ReusesExistingNode(t *testing.T) {
	v := session(t, "a", schema.AS)
	_, _, err := Expand(v, "a", Step{Relationship: schema.ManagedBy, Target: schema.Organization, Alias: "o"}, 0)
	require.NoError(t, err)

	pattern, alias, err := Expand(v, "o", Step{Relationship: schema.SiblingOf, Direction: Both, Alias: "a"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", alias)
	assert.Equal(t, "(o)-[:SIBLING_OF]-(a)", pattern)
	assert.Equal(t, []string{"a", "o"}, v.Aliases())
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"": Out, "out": Out, "IN": In, "either": Both, "both": Both} {
		got, err := ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ParseDirection(%q)", in)
	}
	_, err := ParseDirection("up")
	assert.True(t, qerr.HasCode(err, qerr.CodeInvalidDirection))
}

func TestPathPatterns(t *testing.T) {
	assert.Equal(t, "(a)-[:DEPENDS_ON*1..5]-(b)", PathPattern("a", "b", schema.DependsOn, 5))
	assert.Equal(t, "shortestPath((a)-[:PEERS_WITH*1..3]-(b))", ShortestPathPattern("a", "b", schema.PeersWith, 3))
}

func TestShorthandStep(t *testing.T) {
	s := Downstream.Step("cust", 2)
	assert.Equal(t, Step{Relationship: schema.DependsOn, Direction: In, Target: schema.AS, Alias: "cust", Hops: 2}, s)
}
