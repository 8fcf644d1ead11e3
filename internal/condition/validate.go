package condition

import (
	"fmt"
	"reflect"

	"github.com/maraichr/iypquery/pkg/qerr"
)

// Validate checks a condition tree structurally without allocating any
// parameters: every predicate has a known operator, a well-formed field and a
// value of the right shape, and no combinator holds a nil child. Field
// references are not checked against aliases.
func Validate(c Condition) error {
	switch c := c.(type) {
	case nil:
		return qerr.EmptyConditionTree("condition")
	case Predicate:
		return validatePredicate(c)
	case And:
		return validateChildren(c, "AND")
	case Or:
		return validateChildren(c, "OR")
	case Not:
		if c.Cond == nil {
			return qerr.EmptyConditionTree("NOT")
		}
		return Validate(c.Cond)
	default:
		return qerr.InvalidCondition(fmt.Sprintf("unsupported condition type %T", c))
	}
}

func validateChildren(children []Condition, keyword string) error {
	for _, child := range children {
		if child == nil {
			return qerr.EmptyConditionTree(keyword)
		}
		if err := Validate(child); err != nil {
			return err
		}
	}
	return nil
}

func validatePredicate(p Predicate) error {
	if p.Op == "" {
		return qerr.MissingOperator(p.Field)
	}
	if !knownOps[p.Op] {
		return qerr.UnknownOperator(string(p.Op))
	}
	e, err := ParseExpr(p.Field)
	if err != nil {
		return err
	}
	if e.As != "" {
		return qerr.InvalidField(p.Field)
	}
	if p.Op.Unary() {
		return nil
	}
	switch p.Op {
	case OpIn, OpNotIn:
		if !isList(p.Value) {
			return qerr.InvalidCondition(fmt.Sprintf("%s on '%s' requires a list value", p.Op, p.Field))
		}
	case OpContains, OpStartsWith, OpEndsWith, OpRegex:
		if _, ok := p.Value.(string); !ok {
			return qerr.InvalidCondition(fmt.Sprintf("%s on '%s' requires a string value", p.Op, p.Field))
		}
	default:
		if isList(p.Value) {
			return qerr.InvalidCondition(fmt.Sprintf("%s on '%s' requires a scalar value", p.Op, p.Field))
		}
	}
	return CheckValue(p.Value)
}

// CheckValue accepts integers, floats, strings, booleans and flat lists of them.
func CheckValue(v any) error {
	if v == nil {
		return qerr.InvalidCondition("null value; use is_null instead")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i)
			if el.Kind() == reflect.Interface {
				el = el.Elem()
			}
			if !el.IsValid() || !isScalarKind(el.Kind()) {
				return qerr.InvalidCondition(fmt.Sprintf("list element %d is not a scalar", i))
			}
		}
		return nil
	}
	if !isScalarKind(rv.Kind()) {
		return qerr.InvalidCondition(fmt.Sprintf("unsupported value type %T", v))
	}
	return nil
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
