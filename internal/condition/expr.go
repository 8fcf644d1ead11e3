package condition

import (
	"regexp"
	"strings"

	"github.com/maraichr/iypquery/pkg/qerr"
)

const identPattern = `[A-Za-z_][A-Za-z0-9_]*`

var (
	identRe = regexp.MustCompile(`^` + identPattern + `$`)
	exprRe  = regexp.MustCompile(`^\s*(?:(` + identPattern + `)\s*\(\s*((?i:DISTINCT)\s+)?(\*|` +
		identPattern + `(?:\.` + identPattern + `)?)\s*\)|(` +
		identPattern + `(?:\.` + identPattern + `)?))(?:\s+(?i:AS)\s+(` + identPattern + `))?\s*$`)
)

// aggregates are the functions that collapse rows when used in a projection.
var aggregates = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"collect": true, "stdev": true, "stdevp": true,
}

// Expr is a parsed projection or field expression:
//
//	ref | ref AS name | fn(ref) | fn(DISTINCT ref) | count(*) [AS name]
//
// where ref is `prop` or `alias.prop` and fn is an aggregate function.
type Expr struct {
	Func     string
	Distinct bool
	Alias    string
	Property string
	As       string
}

// IsIdent reports whether s is a valid Cypher identifier for aliases and property keys.
func IsIdent(s string) bool { return identRe.MatchString(s) }

// ParseExpr parses text against the expression grammar.
func ParseExpr(text string) (Expr, error) {
	m := exprRe.FindStringSubmatch(text)
	if m == nil {
		return Expr{}, qerr.InvalidField(text)
	}
	e := Expr{As: m[5]}
	ref := m[4]
	if m[1] != "" {
		fn := strings.ToLower(m[1])
		if !aggregates[fn] {
			return Expr{}, qerr.InvalidField(text)
		}
		if m[3] == "*" && (fn != "count" || m[2] != "") {
			return Expr{}, qerr.InvalidField(text)
		}
		e.Func = fn
		e.Distinct = m[2] != ""
		ref = m[3]
	}
	if alias, prop, ok := strings.Cut(ref, "."); ok {
		e.Alias, e.Property = alias, prop
	} else {
		e.Property = ref
	}
	return e, nil
}

// IsAggregate reports whether the outermost form is an aggregate call.
func (e Expr) IsAggregate() bool { return e.Func != "" }

// Ref returns the referenced field without function or AS wrapping.
func (e Expr) Ref() string {
	if e.Alias == "" {
		return e.Property
	}
	return e.Alias + "." + e.Property
}
