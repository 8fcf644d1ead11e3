// Package validate holds the per-session alias table and the argument checks
// applied by the query builder before anything is appended to its state.
package validate

import (
	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/schema"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// MaxLimit bounds LIMIT to keep result sets finite.
const MaxLimit = 100000

// Validator is the alias symbol table of one query session. It is not safe
// for concurrent use; each session owns its own Validator.
type Validator struct {
	order []string
	kinds map[string]schema.NodeKind
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{kinds: make(map[string]schema.NodeKind)}
}

// Clone returns an independent copy of the symbol table.
func (v *Validator) Clone() *Validator {
	cp := &Validator{
		order: append([]string(nil), v.order...),
		kinds: make(map[string]schema.NodeKind, len(v.kinds)),
	}
	for k, kind := range v.kinds {
		cp.kinds[k] = kind
	}
	return cp
}

// RegisterAlias binds alias to kind. An empty kind registers an untyped
// node whose properties are unrestricted.
func (v *Validator) RegisterAlias(alias string, kind schema.NodeKind) error {
	if !condition.IsIdent(alias) {
		return qerr.InvalidAlias(alias)
	}
	if _, ok := v.kinds[alias]; ok {
		return qerr.DuplicateAlias(alias)
	}
	v.order = append(v.order, alias)
	v.kinds[alias] = kind
	return nil
}

// Has reports whether alias is registered.
func (v *Validator) Has(alias string) bool {
	_, ok := v.kinds[alias]
	return ok
}

// Kind returns the kind bound to alias; ok is false for unknown aliases.
func (v *Validator) Kind(alias string) (schema.NodeKind, bool) {
	k, ok := v.kinds[alias]
	return k, ok
}

// Aliases returns every registered alias in registration order.
func (v *Validator) Aliases() []string {
	return append([]string(nil), v.order...)
}

// ValidatePropertyRef checks a reference of the form `prop` or `alias.prop`.
// Bare names are not checked against any alias.
func (v *Validator) ValidatePropertyRef(alias, prop string) error {
	if alias == "" {
		return nil
	}
	kind, ok := v.kinds[alias]
	if !ok {
		return qerr.UnknownAlias(alias)
	}
	if kind != "" && !schema.HasProperty(kind, prop) {
		return qerr.InvalidProperty(prop, string(kind), schema.AllowedProperties(kind))
	}
	return nil
}

// ValidateField parses a projection expression and checks its reference.
func (v *Validator) ValidateField(text string) (condition.Expr, error) {
	e, err := condition.ParseExpr(text)
	if err != nil {
		return condition.Expr{}, err
	}
	if e.Property == "*" {
		return e, nil
	}
	return e, v.ValidatePropertyRef(e.Alias, e.Property)
}

// ValidateReturnFields validates each field of a RETURN or GROUP BY list.
func (v *Validator) ValidateReturnFields(fields []string) error {
	for _, f := range fields {
		if _, err := v.ValidateField(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrderBy validates ORDER BY fields; a leading '-' means descending
// and is stripped before validation.
func (v *Validator) ValidateOrderBy(fields []string) error {
	for _, f := range fields {
		name, _ := SplitDescending(f)
		if _, err := v.ValidateField(name); err != nil {
			return err
		}
	}
	return nil
}

// SplitDescending strips the descending marker from an ORDER BY field.
func SplitDescending(field string) (name string, desc bool) {
	if len(field) > 0 && field[0] == '-' {
		return field[1:], true
	}
	return field, false
}

// ValidateLimit checks 0 <= n <= MaxLimit.
func ValidateLimit(n int) error {
	if n < 0 {
		return qerr.NegativeBound("limit", n)
	}
	if n > MaxLimit {
		return qerr.BoundTooLarge("limit", n, MaxLimit)
	}
	return nil
}

// ValidateSkip checks n >= 0.
func ValidateSkip(n int) error {
	if n < 0 {
		return qerr.NegativeBound("skip", n)
	}
	return nil
}
