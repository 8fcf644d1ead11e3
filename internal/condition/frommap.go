package condition

import (
	"fmt"
	"math"
	"sort"

	"github.com/maraichr/iypquery/pkg/qerr"
)

// mapOps maps the operator keys accepted in condition maps to Cypher operators.
var mapOps = map[string]Op{
	"=":           OpEq,
	"!=":          OpNe,
	"<":           OpLt,
	"<=":          OpLe,
	">":           OpGt,
	">=":          OpGe,
	"in":          OpIn,
	"not_in":      OpNotIn,
	"contains":    OpContains,
	"starts_with": OpStartsWith,
	"ends_with":   OpEndsWith,
	"regex":       OpRegex,
	"is_null":     OpIsNull,
	"is_not_null": OpIsNotNull,
}

// FromMap converts a decoded JSON/YAML condition into a condition tree.
//
//	{"AND": [c1, c2]}   {"OR": [c1, c2]}   {"NOT": c}
//	{"as.asn": 15169}                     equality
//	{"as.asn": {">": 100, "<": 200}}      operator map
//
// A logical key must be alone in its map. Several field or operator entries
// are ANDed in sorted key order. Unknown operator keys fail with UNKNOWN_OPERATOR.
func FromMap(m map[string]any) (Condition, error) {
	if len(m) == 0 {
		return nil, qerr.InvalidCondition("empty condition map")
	}
	for _, key := range []string{"AND", "OR", "NOT"} {
		v, ok := m[key]
		if !ok {
			continue
		}
		if len(m) != 1 {
			return nil, qerr.InvalidCondition(fmt.Sprintf("%s must be the only key in its map", key))
		}
		return fromLogical(key, v)
	}

	keys := sortedKeys(m)
	conds := make([]Condition, 0, len(keys))
	for _, field := range keys {
		if _, err := ParseExpr(field); err != nil {
			return nil, err
		}
		preds, err := fromField(field, m[field])
		if err != nil {
			return nil, err
		}
		conds = append(conds, preds...)
	}
	if len(conds) == 1 {
		return conds[0], nil
	}
	return And(conds), nil
}

func fromLogical(key string, v any) (Condition, error) {
	if key == "NOT" {
		inner, ok := asMap(v)
		if !ok {
			return nil, qerr.InvalidCondition("NOT expects a condition map")
		}
		c, err := FromMap(inner)
		if err != nil {
			return nil, err
		}
		return Not{Cond: c}, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, qerr.InvalidCondition(key + " expects a list of conditions")
	}
	children := make([]Condition, 0, len(items))
	for i, item := range items {
		inner, ok := asMap(item)
		if !ok {
			return nil, qerr.InvalidCondition(fmt.Sprintf("%s element %d is not a condition map", key, i))
		}
		c, err := FromMap(inner)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	if key == "AND" {
		return And(children), nil
	}
	return Or(children), nil
}

func fromField(field string, v any) ([]Condition, error) {
	ops, ok := asMap(v)
	if !ok {
		val, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		p := Q(field).Eq(val)
		if err := validatePredicate(p); err != nil {
			return nil, err
		}
		return []Condition{p}, nil
	}
	if len(ops) == 0 {
		return nil, qerr.InvalidCondition(fmt.Sprintf("empty operator map for '%s'", field))
	}

	var out []Condition
	for _, key := range sortedKeys(ops) {
		op, ok := mapOps[key]
		if !ok {
			return nil, qerr.UnknownOperator(key)
		}
		if op.Unary() {
			flag, ok := ops[key].(bool)
			if !ok {
				return nil, qerr.InvalidCondition(fmt.Sprintf("%s expects true or false", key))
			}
			if !flag {
				op = invertNull(op)
			}
			out = append(out, Predicate{Field: field, Op: op})
			continue
		}
		val, err := normalizeValue(ops[key])
		if err != nil {
			return nil, err
		}
		p := Predicate{Field: field, Op: op, Value: val}
		if err := validatePredicate(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func invertNull(op Op) Op {
	if op == OpIsNull {
		return OpIsNotNull
	}
	return OpIsNull
}

// normalizeValue folds decoder output into parameter values: integral floats
// become int64 (JSON decodes every number as float64), lists must be flat.
func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x), nil
		}
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			if _, isList := el.([]any); isList {
				return nil, qerr.InvalidCondition("nested lists are not supported")
			}
			n, err := normalizeValue(el)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	if err := CheckValue(v); err != nil {
		return nil, err
	}
	return v, nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
