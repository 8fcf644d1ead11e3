// Package condition implements the boolean condition algebra used in WHERE and
// HAVING clauses: atomic field predicates combined with And, Or and Not. Every
// condition renders to Cypher text plus a flat parameter map; values are never
// interpolated into the text.
package condition

import (
	"fmt"
	"strings"

	"github.com/maraichr/iypquery/pkg/qerr"
)

// Condition is a node of a condition tree. The set of implementations is
// closed: Predicate, And, Or and Not.
type Condition interface {
	// Cypher renders the condition, allocating parameter names from p.
	Cypher(p *Params) (string, map[string]any, error)
	condition()
}

// Op is a comparison operator as it appears in Cypher text.
type Op string

const (
	OpEq         Op = "="
	OpNe         Op = "<>"
	OpLt         Op = "<"
	OpLe         Op = "<="
	OpGt         Op = ">"
	OpGe         Op = ">="
	OpIn         Op = "IN"
	OpNotIn      Op = "NOT IN"
	OpContains   Op = "CONTAINS"
	OpStartsWith Op = "STARTS WITH"
	OpEndsWith   Op = "ENDS WITH"
	OpIsNull     Op = "IS NULL"
	OpIsNotNull  Op = "IS NOT NULL"
	OpRegex      Op = "=~"
)

var knownOps = map[Op]bool{
	OpEq: true, OpNe: true, OpLt: true, OpLe: true, OpGt: true, OpGe: true,
	OpIn: true, OpNotIn: true, OpContains: true, OpStartsWith: true, OpEndsWith: true,
	OpIsNull: true, OpIsNotNull: true, OpRegex: true,
}

// Unary reports whether the operator takes no value.
func (o Op) Unary() bool { return o == OpIsNull || o == OpIsNotNull }

// Predicate compares one field against a value.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

func (Predicate) condition() {}

// Cypher renders `<field> <op> $param_N`, or `<field> <op>` for null checks.
func (pr Predicate) Cypher(p *Params) (string, map[string]any, error) {
	if pr.Op == "" {
		return "", nil, qerr.MissingOperator(pr.Field)
	}
	if !knownOps[pr.Op] {
		return "", nil, qerr.UnknownOperator(string(pr.Op))
	}
	if pr.Op.Unary() {
		return fmt.Sprintf("%s %s", pr.Field, pr.Op), map[string]any{}, nil
	}
	name := p.Next()
	return fmt.Sprintf("%s %s $%s", pr.Field, pr.Op, name), map[string]any{name: pr.Value}, nil
}

// And is satisfied when every child is. An empty And renders as true.
type And []Condition

func (And) condition() {}

func (a And) Cypher(p *Params) (string, map[string]any, error) {
	return join(a, "AND", "true", p)
}

// Or is satisfied when any child is. An empty Or renders as false.
type Or []Condition

func (Or) condition() {}

func (o Or) Cypher(p *Params) (string, map[string]any, error) {
	return join(o, "OR", "false", p)
}

// Not negates its child.
type Not struct {
	Cond Condition
}

func (Not) condition() {}

func (n Not) Cypher(p *Params) (string, map[string]any, error) {
	if n.Cond == nil {
		return "", nil, qerr.EmptyConditionTree("NOT")
	}
	text, params, err := n.Cond.Cypher(p)
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + text + ")", params, nil
}

// Negate wraps c in a Not.
func Negate(c Condition) Not { return Not{Cond: c} }

func join(children []Condition, keyword, identity string, p *Params) (string, map[string]any, error) {
	if len(children) == 0 {
		return identity, map[string]any{}, nil
	}
	parts := make([]string, 0, len(children))
	all := make(map[string]any)
	for _, c := range children {
		if c == nil {
			return "", nil, qerr.EmptyConditionTree(keyword)
		}
		text, params, err := c.Cypher(p)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+text+")")
		for k, v := range params {
			all[k] = v
		}
	}
	return strings.Join(parts, " "+keyword+" "), all, nil
}
