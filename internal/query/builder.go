// Package query is the session-scoped Cypher builder for the IYP graph. A
// Builder accumulates MATCH patterns, conditions, projections and paging, and
// Compile turns that state into one query string plus one parameter map.
// Nothing here talks to a database.
package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/schema"
	"github.com/maraichr/iypquery/internal/traversal"
	"github.com/maraichr/iypquery/internal/validate"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// Query is a compiled, parameterized Cypher statement.
type Query struct {
	Text   string
	Params map[string]any
}

// Prop is an inline property-equality filter for Find.
type Prop struct {
	Name  string
	Value any
}

// Relationship describes a traversal added with WithRelationship. From
// defaults to the root alias, Direction to out and Hops to 1. To and Alias
// are optional.
type Relationship struct {
	Kind      string
	To        string
	From      string
	Alias     string
	Direction traversal.Direction
	Hops      int
}

// StepOptions are the optional arguments of the traversal shorthands.
type StepOptions struct {
	From  string
	Alias string
	Hops  int
}

// part is the accumulated clause state of a session.
type part struct {
	match        []string
	where        []condition.Condition
	returnFields []string
	orderBy      []string
	groupBy      []string
	having       []condition.Condition
	limit        *int
	skip         *int
}

// Builder is one query session. Every method validates its arguments before
// touching state, so a failed call leaves the session unchanged. A Builder
// is not safe for concurrent use.
type Builder struct {
	id            string
	validator     *validate.Validator
	params        condition.Params
	filterParams  map[string]any
	root          string
	relationships []traversal.Step
	part          part
}

// New starts an empty session.
func New() *Builder {
	return &Builder{
		id:           uuid.NewString(),
		validator:    validate.New(),
		filterParams: make(map[string]any),
	}
}

// ID identifies the session in logs.
func (b *Builder) ID() string { return b.id }

// Root returns the alias established by the latest Find, or "".
func (b *Builder) Root() string { return b.root }

// Aliases returns all aliases registered so far, in registration order.
func (b *Builder) Aliases() []string { return b.validator.Aliases() }

// Relationships returns the traversal steps added so far.
func (b *Builder) Relationships() []traversal.Step { return slices.Clone(b.relationships) }

// Find matches nodes of kind under alias (derived from the kind when empty)
// and makes it the root of later traversals. Filters become inline
// property-equality parameters in the MATCH pattern.
func (b *Builder) Find(kind, alias string, filters ...Prop) error {
	nodeKind, err := schema.ParseNodeKind(kind)
	if err != nil {
		return err
	}
	for _, f := range filters {
		if !condition.IsIdent(f.Name) || !schema.HasProperty(nodeKind, f.Name) {
			return qerr.InvalidProperty(f.Name, string(nodeKind), schema.AllowedProperties(nodeKind))
		}
		if err := condition.CheckValue(f.Value); err != nil {
			return err
		}
		if err := validate.CheckInjection(f.Value); err != nil {
			return err
		}
	}
	if alias == "" {
		alias = traversal.AllocateAlias(b.validator, nodeKind, 0)
	}
	if err := b.validator.RegisterAlias(alias, nodeKind); err != nil {
		return err
	}
	b.root = alias

	pattern := alias + ":" + string(nodeKind)
	if len(filters) > 0 {
		parts := make([]string, 0, len(filters))
		for _, f := range filters {
			name := b.params.Next()
			b.filterParams[name] = f.Value
			parts = append(parts, fmt.Sprintf("%s: $%s", f.Name, name))
		}
		pattern += " {" + strings.Join(parts, ", ") + "}"
	}
	b.part.match = append(b.part.match, "MATCH ("+pattern+")")
	return nil
}

// WithRelationship adds one traversal hop.
func (b *Builder) WithRelationship(r Relationship) error {
	if b.root == "" {
		return qerr.NoMatchClause()
	}
	rel, err := schema.ParseRelationshipKind(r.Kind)
	if err != nil {
		return err
	}
	var target schema.NodeKind
	if r.To != "" {
		if target, err = schema.ParseNodeKind(r.To); err != nil {
			return err
		}
	}
	from := r.From
	if from == "" {
		from = b.root
	}
	step := traversal.Step{
		Relationship: rel,
		Direction:    r.Direction,
		Target:       target,
		Alias:        r.Alias,
		Hops:         r.Hops,
	}
	pattern, alias, err := traversal.Expand(b.validator, from, step, len(b.relationships))
	if err != nil {
		return err
	}
	step.Alias = alias
	b.relationships = append(b.relationships, step)
	b.part.match = append(b.part.match, "MATCH "+pattern)
	return nil
}

// PathTo matches a bounded undirected path between two bound aliases.
func (b *Builder) PathTo(from, to, rel string, maxHops int) error {
	kind, err := b.pathArgs(from, to, rel, maxHops)
	if err != nil {
		return err
	}
	b.part.match = append(b.part.match, "MATCH "+traversal.PathPattern(from, to, kind, maxHops))
	return nil
}

// ShortestPathTo binds name to the shortest bounded path between two bound aliases.
func (b *Builder) ShortestPathTo(name, from, to, rel string, maxHops int) error {
	kind, err := b.pathArgs(from, to, rel, maxHops)
	if err != nil {
		return err
	}
	if err := b.validator.RegisterAlias(name, ""); err != nil {
		return err
	}
	b.part.match = append(b.part.match,
		"MATCH "+name+" = "+traversal.ShortestPathPattern(from, to, kind, maxHops))
	return nil
}

func (b *Builder) pathArgs(from, to, rel string, maxHops int) (schema.RelationshipKind, error) {
	if b.root == "" {
		return "", qerr.NoMatchClause()
	}
	kind, err := schema.ParseRelationshipKind(rel)
	if err != nil {
		return "", err
	}
	for _, alias := range []string{from, to} {
		if !b.validator.Has(alias) {
			return "", qerr.UnknownAlias(alias)
		}
	}
	if maxHops < 1 || maxHops > traversal.MaxHops {
		return "", qerr.InvalidHops(maxHops, traversal.MaxHops)
	}
	return kind, nil
}

// Where adds a filter; multiple filters are ANDed.
func (b *Builder) Where(c condition.Condition) error {
	if b.root == "" {
		return qerr.NoMatchClause()
	}
	if err := condition.Validate(c); err != nil {
		return err
	}
	b.part.where = append(b.part.where, c)
	return nil
}

// WhereMap adds a filter written as a condition map (see condition.FromMap).
func (b *Builder) WhereMap(m map[string]any) error {
	c, err := condition.FromMap(m)
	if err != nil {
		return err
	}
	return b.Where(c)
}

// Having adds a post-aggregation filter. It only takes effect together
// with GroupBy and ReturnFields.
func (b *Builder) Having(c condition.Condition) error {
	if b.root == "" {
		return qerr.NoMatchClause()
	}
	if err := condition.Validate(c); err != nil {
		return err
	}
	b.part.having = append(b.part.having, c)
	return nil
}

// HavingMap adds a HAVING filter written as a condition map.
func (b *Builder) HavingMap(m map[string]any) error {
	c, err := condition.FromMap(m)
	if err != nil {
		return err
	}
	return b.Having(c)
}

// ReturnFields replaces the projection.
func (b *Builder) ReturnFields(fields ...string) error {
	if err := b.validator.ValidateReturnFields(fields); err != nil {
		return err
	}
	b.part.returnFields = slices.Clone(fields)
	return nil
}

// GroupBy replaces the grouping keys.
func (b *Builder) GroupBy(fields ...string) error {
	if err := b.validator.ValidateReturnFields(fields); err != nil {
		return err
	}
	b.part.groupBy = slices.Clone(fields)
	return nil
}

// OrderBy replaces the sort keys. Prefix a field with '-' for descending.
func (b *Builder) OrderBy(fields ...string) error {
	if err := b.validator.ValidateOrderBy(fields); err != nil {
		return err
	}
	b.part.orderBy = slices.Clone(fields)
	return nil
}

// Limit caps the number of rows.
func (b *Builder) Limit(n int) error {
	if err := validate.ValidateLimit(n); err != nil {
		return err
	}
	b.part.limit = &n
	return nil
}

// Skip drops the first n rows.
func (b *Builder) Skip(n int) error {
	if err := validate.ValidateSkip(n); err != nil {
		return err
	}
	b.part.skip = &n
	return nil
}

// Clone returns an independent session with the same state and a new ID.
func (b *Builder) Clone() *Builder {
	cp := &Builder{
		id:            uuid.NewString(),
		validator:     b.validator.Clone(),
		params:        b.params,
		filterParams:  maps.Clone(b.filterParams),
		root:          b.root,
		relationships: slices.Clone(b.relationships),
		part: part{
			match:        slices.Clone(b.part.match),
			where:        slices.Clone(b.part.where),
			returnFields: slices.Clone(b.part.returnFields),
			orderBy:      slices.Clone(b.part.orderBy),
			groupBy:      slices.Clone(b.part.groupBy),
			having:       slices.Clone(b.part.having),
		},
	}
	if b.part.limit != nil {
		n := *b.part.limit
		cp.part.limit = &n
	}
	if b.part.skip != nil {
		n := *b.part.skip
		cp.part.skip = &n
	}
	return cp
}
