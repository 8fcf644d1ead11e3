// Package chain translates declarative operation chains into compiled
// queries. An operation chain is a closed set of typed operations, each
// applied to a query.Builder in order.
package chain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/query"
	"github.com/maraichr/iypquery/internal/traversal"
)

// Kind names an operation in a chain document.
type Kind string

const (
	KindFind         Kind = "find"
	KindRelate       Kind = "relate"
	KindWhere        Kind = "where"
	KindHaving       Kind = "having"
	KindReturn       Kind = "return"
	KindGroupBy      Kind = "group_by"
	KindOrderBy      Kind = "order_by"
	KindLimit        Kind = "limit"
	KindSkip         Kind = "skip"
	KindUpstream     Kind = "upstream"
	KindDownstream   Kind = "downstream"
	KindPeers        Kind = "peers"
	KindOrganization Kind = "organization"
	KindCountry      Kind = "country"
	KindCategory     Kind = "category"
	KindIXP          Kind = "ixp"
	KindPrefixes     Kind = "prefixes"
	KindSiblings     Kind = "siblings"
	KindExternalIDs  Kind = "external_ids"
)

// shorthands maps traversal operation kinds to their fixed relationship.
var shorthands = map[Kind]traversal.Shorthand{
	KindUpstream:     traversal.Upstream,
	KindDownstream:   traversal.Downstream,
	KindPeers:        traversal.Peers,
	KindOrganization: traversal.Organization,
	KindCountry:      traversal.Country,
	KindCategory:     traversal.Category,
	KindIXP:          traversal.MemberOfIXP,
	KindPrefixes:     traversal.Prefixes,
	KindSiblings:     traversal.Siblings,
	KindExternalIDs:  traversal.ExternalIDs,
}

// Kinds lists every supported operation kind.
func Kinds() []Kind {
	kinds := []Kind{KindFind, KindRelate, KindWhere, KindHaving, KindReturn,
		KindGroupBy, KindOrderBy, KindLimit, KindSkip}
	for k := range shorthands {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds[9:])
	return kinds
}

// Operation is one step of a chain. The set of implementations is closed.
type Operation interface {
	Kind() Kind
	Apply(b *query.Builder) error
	String() string
	operation()
}

// Find starts the chain at nodes of Kind.
type Find struct {
	NodeKind string
	Alias    string
	Filters  map[string]any
}

// Relate adds an explicit traversal.
type Relate struct {
	Relationship string
	To           string
	From         string
	Alias        string
	Direction    traversal.Direction
	Hops         int
}

// Where adds a WHERE condition.
type Where struct{ Cond condition.Condition }

// Having adds a post-aggregation condition.
type Having struct{ Cond condition.Condition }

// Return sets the projection.
type Return struct{ Fields []string }

// GroupBy sets the grouping keys.
type GroupBy struct{ Fields []string }

// OrderBy sets the sort keys; '-' marks descending.
type OrderBy struct{ Fields []string }

type Limit struct{ N int }

type Skip struct{ N int }

// Traverse applies one of the named shorthand traversals.
type Traverse struct {
	Op    Kind
	From  string
	Alias string
	Hops  int
}

func (Find) operation()     {}
func (Relate) operation()   {}
func (Where) operation()    {}
func (Having) operation()   {}
func (Return) operation()   {}
func (GroupBy) operation()  {}
func (OrderBy) operation()  {}
func (Limit) operation()    {}
func (Skip) operation()     {}
func (Traverse) operation() {}

func (Find) Kind() Kind       { return KindFind }
func (Relate) Kind() Kind     { return KindRelate }
func (Where) Kind() Kind      { return KindWhere }
func (Having) Kind() Kind     { return KindHaving }
func (Return) Kind() Kind     { return KindReturn }
func (GroupBy) Kind() Kind    { return KindGroupBy }
func (OrderBy) Kind() Kind    { return KindOrderBy }
func (Limit) Kind() Kind      { return KindLimit }
func (Skip) Kind() Kind       { return KindSkip }
func (t Traverse) Kind() Kind { return t.Op }

func (f Find) Apply(b *query.Builder) error {
	props := make([]query.Prop, 0, len(f.Filters))
	for _, name := range sortedKeys(f.Filters) {
		props = append(props, query.Prop{Name: name, Value: f.Filters[name]})
	}
	return b.Find(f.NodeKind, f.Alias, props...)
}

func (r Relate) Apply(b *query.Builder) error {
	return b.WithRelationship(query.Relationship{
		Kind:      r.Relationship,
		To:        r.To,
		From:      r.From,
		Alias:     r.Alias,
		Direction: r.Direction,
		Hops:      r.Hops,
	})
}

func (w Where) Apply(b *query.Builder) error   { return b.Where(w.Cond) }
func (h Having) Apply(b *query.Builder) error  { return b.Having(h.Cond) }
func (r Return) Apply(b *query.Builder) error  { return b.ReturnFields(r.Fields...) }
func (g GroupBy) Apply(b *query.Builder) error { return b.GroupBy(g.Fields...) }
func (o OrderBy) Apply(b *query.Builder) error { return b.OrderBy(o.Fields...) }
func (l Limit) Apply(b *query.Builder) error   { return b.Limit(l.N) }
func (s Skip) Apply(b *query.Builder) error    { return b.Skip(s.N) }

func (t Traverse) Apply(b *query.Builder) error {
	sh, ok := shorthands[t.Op]
	if !ok {
		return fmt.Errorf("traverse: no shorthand named %q", t.Op)
	}
	return b.Shorthand(sh, query.StepOptions{From: t.From, Alias: t.Alias, Hops: t.Hops})
}

func (f Find) String() string {
	args := []string{f.NodeKind}
	for _, name := range sortedKeys(f.Filters) {
		args = append(args, fmt.Sprintf("%s=%v", name, f.Filters[name]))
	}
	return call(KindFind, args...)
}

func (r Relate) String() string {
	args := []string{r.Relationship}
	if r.To != "" {
		args = append(args, "to="+r.To)
	}
	if r.Direction != "" && r.Direction != traversal.Out {
		args = append(args, "direction="+string(r.Direction))
	}
	if r.Hops > 1 {
		args = append(args, fmt.Sprintf("hops=%d", r.Hops))
	}
	return call(KindRelate, args...)
}

func (Where) String() string     { return call(KindWhere) }
func (Having) String() string    { return call(KindHaving) }
func (r Return) String() string  { return call(KindReturn, r.Fields...) }
func (g GroupBy) String() string { return call(KindGroupBy, g.Fields...) }
func (o OrderBy) String() string { return call(KindOrderBy, o.Fields...) }
func (l Limit) String() string   { return call(KindLimit, fmt.Sprint(l.N)) }
func (s Skip) String() string    { return call(KindSkip, fmt.Sprint(s.N)) }

func (t Traverse) String() string {
	var args []string
	if t.From != "" {
		args = append(args, "from="+t.From)
	}
	if t.Hops > 1 {
		args = append(args, fmt.Sprintf("hops=%d", t.Hops))
	}
	return call(t.Op, args...)
}

func call(k Kind, args ...string) string {
	return string(k) + "(" + strings.Join(args, ", ") + ")"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
