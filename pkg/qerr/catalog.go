package qerr

import "fmt"

// --- Registry ---

func UnknownNodeKind(name string) *Error {
	return New(CodeUnknownKind, fmt.Sprintf("invalid node type: %s", name))
}

func UnknownRelationshipKind(name string) *Error {
	return New(CodeUnknownKind, fmt.Sprintf("invalid relationship type: %s", name))
}

// --- Aliases ---

func DuplicateAlias(alias string) *Error {
	return New(CodeDuplicateAlias, fmt.Sprintf("alias '%s' is already defined", alias))
}

func UnknownAlias(alias string) *Error {
	return New(CodeUnknownAlias, fmt.Sprintf("unknown alias: %s", alias))
}

func UnknownSourceAlias(alias string) *Error {
	return New(CodeUnknownSourceAlias, fmt.Sprintf("unknown source alias: %s", alias))
}

func InvalidAlias(alias string) *Error {
	return New(CodeInvalidField, fmt.Sprintf("alias '%s' is not a valid identifier", alias))
}

// --- Properties and fields ---

func InvalidProperty(prop, kind string, valid []string) *Error {
	return New(CodeInvalidProperty, fmt.Sprintf("invalid property '%s' for node type %s", prop, kind)).
		WithDetails(valid...)
}

func InvalidField(field string) *Error {
	return New(CodeInvalidField, fmt.Sprintf("invalid field reference: %q", field))
}

// --- Conditions ---

func UnknownOperator(op string) *Error {
	return New(CodeUnknownOperator, fmt.Sprintf("unknown operator: %s", op))
}

func MissingOperator(field string) *Error {
	return New(CodeMissingOperator, fmt.Sprintf("condition for field '%s' has no operator", field))
}

func InvalidCondition(reason string) *Error {
	return New(CodeInvalidCondition, "invalid condition: "+reason)
}

func EmptyConditionTree(what string) *Error {
	return New(CodeEmptyConditionTree, what+" has no condition to wrap")
}

// --- Values and bounds ---

func InjectionRisk(pattern string) *Error {
	return New(CodeInjectionRisk, fmt.Sprintf("potential Cypher injection detected: %s in value", pattern))
}

func NegativeBound(name string, n int) *Error {
	return New(CodeInvalidBound, fmt.Sprintf("%s must be non-negative, got %d", name, n))
}

func BoundTooLarge(name string, n, max int) *Error {
	return New(CodeInvalidBound, fmt.Sprintf("%s cannot exceed %d, got %d", name, max, n))
}

func InvalidHops(n, max int) *Error {
	return New(CodeInvalidBound, fmt.Sprintf("hops must be between 1 and %d, got %d", max, n))
}

func InvalidDirection(dir string) *Error {
	return New(CodeInvalidDirection, fmt.Sprintf("direction must be one of: out, in, both (got %q)", dir))
}

// --- Compilation ---

func NoMatchClause() *Error {
	return New(CodeNoMatchClause, "no MATCH clauses defined; call Find first")
}

// --- Operation chains ---

func UnknownOperation(name string) *Error {
	return New(CodeUnknownOperation, fmt.Sprintf("unknown operation: %s", name))
}

func InvalidOperation(op, reason string) *Error {
	return New(CodeInvalidOperation, fmt.Sprintf("operation %s: %s", op, reason))
}

func OperationFailed(index int, op string, cause error) *Error {
	return Wrap(CodeOf(cause), fmt.Sprintf("error applying step %d (%s)", index, op), cause)
}
