package query

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/validate"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// countField is the projection used by CountQuery.
const countField = "count(*) AS count"

// Compile renders the session as MATCH*, WHERE?, (WITH, WHERE?)? RETURN,
// ORDER BY?, SKIP?, LIMIT?, one clause per line. Compile does not change the
// session, so repeated calls return identical results.
func (b *Builder) Compile() (Query, error) {
	if len(b.part.match) == 0 {
		return Query{}, qerr.NoMatchClause()
	}

	counter := b.params
	params := maps.Clone(b.filterParams)
	lines := slices.Clone(b.part.match)

	if len(b.part.where) > 0 {
		text, err := renderConditions(b.part.where, &counter, params)
		if err != nil {
			return Query{}, err
		}
		lines = append(lines, "WHERE "+text)
	}

	switch {
	case len(b.part.groupBy) > 0 && len(b.part.returnFields) > 0:
		lines = append(lines, "WITH "+strings.Join(withProjection(b.part.groupBy, b.part.returnFields), ", "))
		if len(b.part.having) > 0 {
			text, err := renderConditions(b.part.having, &counter, params)
			if err != nil {
				return Query{}, err
			}
			lines = append(lines, "WHERE "+text)
		}
		lines = append(lines, "RETURN "+strings.Join(b.part.returnFields, ", "))
	case len(b.part.groupBy) > 0:
		lines = append(lines, "RETURN "+strings.Join(b.part.groupBy, ", "))
	case len(b.part.returnFields) > 0:
		lines = append(lines, "RETURN "+strings.Join(b.part.returnFields, ", "))
	default:
		lines = append(lines, "RETURN "+strings.Join(b.validator.Aliases(), ", "))
	}

	if len(b.part.orderBy) > 0 {
		fields := make([]string, 0, len(b.part.orderBy))
		for _, f := range b.part.orderBy {
			if name, desc := validate.SplitDescending(f); desc {
				fields = append(fields, name+" DESC")
			} else {
				fields = append(fields, name+" ASC")
			}
		}
		lines = append(lines, "ORDER BY "+strings.Join(fields, ", "))
	}
	if b.part.skip != nil {
		lines = append(lines, "SKIP "+strconv.Itoa(*b.part.skip))
	}
	if b.part.limit != nil {
		lines = append(lines, "LIMIT "+strconv.Itoa(*b.part.limit))
	}

	return Query{Text: strings.Join(lines, "\n"), Params: params}, nil
}

// CountQuery compiles `RETURN count(*) AS count` over a copy of the MATCH
// and WHERE state. The session itself is not modified.
func (b *Builder) CountQuery() (Query, error) {
	cp := b.Clone()
	cp.part = part{
		match:        cp.part.match,
		where:        cp.part.where,
		returnFields: []string{countField},
	}
	return cp.Compile()
}

// withProjection lists the grouping keys followed by every non-aggregate
// return field not already present.
func withProjection(groupBy, returnFields []string) []string {
	out := slices.Clone(groupBy)
	for _, f := range returnFields {
		e, err := condition.ParseExpr(f)
		if err == nil && e.IsAggregate() {
			continue
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func renderConditions(conds []condition.Condition, counter *condition.Params, into map[string]any) (string, error) {
	var c condition.Condition = condition.And(conds)
	if len(conds) == 1 {
		c = conds[0]
	}
	text, params, err := c.Cypher(counter)
	if err != nil {
		return "", err
	}
	maps.Copy(into, params)
	return text, nil
}
