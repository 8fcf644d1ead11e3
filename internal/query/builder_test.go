package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/traversal"
	"github.com/maraichr/iypquery/pkg/qerr"
)

func TestFindInlineFilter(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "", Prop{Name: "asn", Value: 15169}))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Contains(t, q.Text, "MATCH (as:AS {asn: $param_0})")
	assert.Contains(t, q.Text, "RETURN as")
	assert.Equal(t, map[string]any{"param_0": 15169}, q.Params)
}

func TestVariableLengthTraversal(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	require.NoError(t, b.WithRelationship(Relationship{Kind: "DEPENDS_ON", To: "AS", Alias: "u", Hops: 2}))
	require.NoError(t, b.ReturnFields("a.asn", "u.asn"))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, "MATCH (a:AS)\nMATCH (a)-[:DEPENDS_ON*1..2]->(u:AS)\nRETURN a.asn, u.asn", q.Text)
	assert.Empty(t, q.Params)
}

func TestGroupByEmitsWith(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("Country", "c"))
	require.NoError(t, b.WithRelationship(Relationship{Kind: "COUNTRY", Direction: traversal.In, To: "AS", Alias: "as"}))
	require.NoError(t, b.GroupBy("c.country_code"))
	require.NoError(t, b.ReturnFields("c.country_code", "count(as) as as_count"))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Contains(t, q.Text, "MATCH (as:AS)-[:COUNTRY]->(c)")
	with := strings.Index(q.Text, "WITH c.country_code\n")
	ret := strings.Index(q.Text, "RETURN c.country_code, count(as) as as_count")
	require.GreaterOrEqual(t, with, 0)
	require.Greater(t, ret, with)
}

func TestGroupByHaving(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("Country", "c"))
	require.NoError(t, b.Shorthand(traversal.Shorthand{Relationship: "COUNTRY", Target: "AS", Direction: traversal.In}, StepOptions{Alias: "as"}))
	require.NoError(t, b.GroupBy("c.country_code"))
	require.NoError(t, b.ReturnFields("c.country_code", "c.name", As(Count("as"), "n")))
	require.NoError(t, b.Having(condition.Q("n").Gt(10)))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"MATCH (c:Country)",
		"MATCH (as:AS)-[:COUNTRY]->(c)",
		"WITH c.country_code, c.name",
		"WHERE n > $param_0",
		"RETURN c.country_code, c.name, count(as) AS n",
	}, "\n"), q.Text)
	assert.Equal(t, map[string]any{"param_0": 10}, q.Params)
}

func TestGroupByWithoutReturnFields(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	require.NoError(t, b.GroupBy("a.name"))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, "MATCH (a:AS)\nRETURN a.name", q.Text)
}

func TestWhereCombinesConditions(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	require.NoError(t, b.Where(condition.And{condition.Q("x").Eq(1), condition.Q("y").Gt(2)}))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Contains(t, q.Text, "WHERE (x = $param_0) AND (y > $param_1)")
	assert.Equal(t, map[string]any{"param_0": 1, "param_1": 2}, q.Params)
}

func TestMultipleWhereCallsAreAnded(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a", Prop{Name: "asn", Value: 2497}))
	require.NoError(t, b.Where(condition.Q("a.name").Contains("IIJ")))
	require.NoError(t, b.WhereMap(map[string]any{"a.asn": map[string]any{"<": 3000}}))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Contains(t, q.Text, "WHERE (a.name CONTAINS $param_1) AND (a.asn < $param_2)")
	assert.Len(t, q.Params, 3)
	assert.Equal(t, 3000, q.Params["param_2"])
}

func TestDuplicateFindAlias(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	err := b.Find("AS", "a")
	require.Error(t, err)
	assert.Equal(t, qerr.CodeDuplicateAlias, qerr.CodeOf(err))
	assert.Len(t, b.part.match, 1)
}

func TestInjectionRejectedBeforeText(t *testing.T) {
	b := New()
	err := b.Find("AS", "a", Prop{Name: "name", Value: "x'}) DETACH DELETE n //"})
	require.Error(t, err)
	assert.Equal(t, qerr.CodeInjectionRisk, qerr.CodeOf(err))
	assert.False(t, b.validator.Has("a"))

	_, err = b.Compile()
	assert.Equal(t, qerr.CodeNoMatchClause, qerr.CodeOf(err))
}

func TestFindRejectsUnknownProperty(t *testing.T) {
	err := New().Find("Country", "c", Prop{Name: "asn", Value: 1})
	assert.Equal(t, qerr.CodeInvalidProperty, qerr.CodeOf(err))

	err = New().Find("Router", "r")
	assert.Equal(t, qerr.CodeUnknownKind, qerr.CodeOf(err))
}

func TestRequiresFind(t *testing.T) {
	b := New()
	assert.Equal(t, qerr.CodeNoMatchClause, qerr.CodeOf(b.Upstream(StepOptions{})))
	assert.Equal(t, qerr.CodeNoMatchClause, qerr.CodeOf(b.Where(condition.Q("x").Eq(1))))
	_, err := b.Compile()
	assert.Equal(t, qerr.CodeNoMatchClause, qerr.CodeOf(err))
}

func TestCompileIsIdempotent(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "", Prop{Name: "asn", Value: 15169}))
	require.NoError(t, b.Where(condition.Or{condition.Q("as.name").StartsWith("Goo"), condition.Q("as.asn").In([]any{1, 2})}))
	require.NoError(t, b.OrderBy("-as.asn"))
	require.NoError(t, b.Limit(5))

	first, err := b.Compile()
	require.NoError(t, err)
	second, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClauseOrder(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	require.NoError(t, b.Upstream(StepOptions{Alias: "u"}))
	require.NoError(t, b.Where(condition.Q("u.asn").Ne(0)))
	require.NoError(t, b.ReturnFields("a.asn", "u.asn"))
	require.NoError(t, b.OrderBy("-u.asn", "a.asn"))
	require.NoError(t, b.Skip(10))
	require.NoError(t, b.Limit(20))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"MATCH (a:AS)",
		"MATCH (a)-[:DEPENDS_ON]->(u:AS)",
		"WHERE u.asn <> $param_0",
		"RETURN a.asn, u.asn",
		"ORDER BY u.asn DESC, a.asn ASC",
		"SKIP 10",
		"LIMIT 20",
	}, "\n"), q.Text)
}

func TestShorthandsMatchExplicitRelationship(t *testing.T) {
	short := New()
	require.NoError(t, short.Find("AS", "a"))
	require.NoError(t, short.Downstream(StepOptions{Hops: 3}))

	explicit := New()
	require.NoError(t, explicit.Find("AS", "a"))
	require.NoError(t, explicit.WithRelationship(Relationship{Kind: "DEPENDS_ON", To: "AS", Direction: traversal.In, Hops: 3}))

	sq, err := short.Compile()
	require.NoError(t, err)
	eq, err := explicit.Compile()
	require.NoError(t, err)
	assert.Equal(t, eq.Text, sq.Text)
	assert.Contains(t, sq.Text, "MATCH (as:AS)-[:DEPENDS_ON*1..3]->(a)")
}

func TestShorthandChain(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a", Prop{Name: "asn", Value: 2497}))
	require.NoError(t, b.Organization(StepOptions{Alias: "o"}))
	require.NoError(t, b.Country(StepOptions{From: "o"}))
	require.NoError(t, b.Peers(StepOptions{}))
	require.NoError(t, b.Category(StepOptions{}))
	require.NoError(t, b.MemberOfIXP(StepOptions{}))
	require.NoError(t, b.OriginatedPrefixes(StepOptions{}))
	require.NoError(t, b.Siblings(StepOptions{}))
	require.NoError(t, b.ExternalIDs(StepOptions{}))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"MATCH (a:AS {asn: $param_0})",
		"MATCH (a)-[:MANAGED_BY]->(o:Organization)",
		"MATCH (o)-[:COUNTRY]->(country:Country)",
		"MATCH (a)-[:PEERS_WITH]-(as:AS)",
		"MATCH (a)-[:CATEGORIZED]->(tag:Tag)",
		"MATCH (a)-[:MEMBER_OF]->(ixp:IXP)",
		"MATCH (prefix:Prefix)-[:ORIGINATE]->(a)",
		"MATCH (a)-[:SIBLING_OF]-(node_6)",
		"MATCH (a)-[:EXTERNAL_ID]->(node_7)",
		"RETURN a, o, country, as, tag, ixp, prefix, node_6, node_7",
	}, "\n"), q.Text)
}

func TestInvalidHops(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	assert.Equal(t, qerr.CodeInvalidBound, qerr.CodeOf(b.Upstream(StepOptions{Hops: traversal.MaxHops + 1})))
	assert.Equal(t, qerr.CodeInvalidBound, qerr.CodeOf(b.Upstream(StepOptions{Hops: -1})))
	assert.Empty(t, b.Relationships())
}

func TestPaths(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a", Prop{Name: "asn", Value: 1}))
	require.NoError(t, b.Find("AS", "b", Prop{Name: "asn", Value: 2}))
	require.NoError(t, b.ShortestPathTo("p", "a", "b", "PEERS_WITH", 4))
	require.NoError(t, b.ReturnFields("p"))

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"MATCH (a:AS {asn: $param_0})",
		"MATCH (b:AS {asn: $param_1})",
		"MATCH p = shortestPath((a)-[:PEERS_WITH*1..4]-(b))",
		"RETURN p",
	}, "\n"), q.Text)

	assert.Equal(t, qerr.CodeUnknownAlias, qerr.CodeOf(b.PathTo("a", "zz", "PEERS_WITH", 2)))
	assert.Equal(t, qerr.CodeInvalidBound, qerr.CodeOf(b.PathTo("a", "b", "PEERS_WITH", 0)))
	require.NoError(t, b.PathTo("a", "b", "DEPENDS_ON", 2))
}

func TestCountQueryLeavesSessionUntouched(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a", Prop{Name: "asn", Value: 1}))
	require.NoError(t, b.Where(condition.Q("a.name").IsNotNull()))
	require.NoError(t, b.ReturnFields("a.name"))
	require.NoError(t, b.OrderBy("a.name"))
	require.NoError(t, b.Limit(3))

	before, err := b.Compile()
	require.NoError(t, err)

	cq, err := b.CountQuery()
	require.NoError(t, err)
	assert.Equal(t, "MATCH (a:AS {asn: $param_0})\nWHERE a.name IS NOT NULL\nRETURN count(*) AS count", cq.Text)
	assert.Equal(t, map[string]any{"param_0": 1}, cq.Params)

	after, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	require.NoError(t, b.Limit(1))
	cp := b.Clone()
	require.NoError(t, cp.Upstream(StepOptions{}))
	require.NoError(t, cp.Limit(2))

	assert.NotEqual(t, b.ID(), cp.ID())
	assert.Equal(t, []string{"a"}, b.Aliases())
	assert.Equal(t, []string{"a", "as"}, cp.Aliases())

	q, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, "MATCH (a:AS)\nRETURN a\nLIMIT 1", q.Text)
}

func TestFieldValidation(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	assert.Equal(t, qerr.CodeInvalidProperty, qerr.CodeOf(b.ReturnFields("a.country_code")))
	assert.Equal(t, qerr.CodeUnknownAlias, qerr.CodeOf(b.OrderBy("-z.name")))
	assert.Equal(t, qerr.CodeInvalidField, qerr.CodeOf(b.GroupBy("a.name; DROP")))
	assert.Equal(t, qerr.CodeInvalidBound, qerr.CodeOf(b.Limit(-1)))
	assert.Equal(t, qerr.CodeInvalidBound, qerr.CodeOf(b.Skip(-3)))
}

func TestHavingMapRejectsUnknownOperator(t *testing.T) {
	b := New()
	require.NoError(t, b.Find("AS", "a"))
	err := b.HavingMap(map[string]any{"n": map[string]any{"~~": 1}})
	assert.Equal(t, qerr.CodeUnknownOperator, qerr.CodeOf(err))
}
