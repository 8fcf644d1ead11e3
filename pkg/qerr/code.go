package qerr

// Code is a machine-readable error code identifying why a query could not be built.
type Code string

// Registry errors.
const (
	CodeUnknownKind Code = "UNKNOWN_KIND"
)

// Alias and property errors.
const (
	CodeDuplicateAlias     Code = "DUPLICATE_ALIAS"
	CodeUnknownAlias       Code = "UNKNOWN_ALIAS"
	CodeUnknownSourceAlias Code = "UNKNOWN_SOURCE_ALIAS"
	CodeInvalidProperty    Code = "INVALID_PROPERTY"
	CodeInvalidField       Code = "INVALID_FIELD"
)

// Condition errors.
const (
	CodeUnknownOperator    Code = "UNKNOWN_OPERATOR"
	CodeMissingOperator    Code = "MISSING_OPERATOR"
	CodeInvalidCondition   Code = "INVALID_CONDITION"
	CodeEmptyConditionTree Code = "EMPTY_CONDITION_TREE"
)

// Value and bound errors.
const (
	CodeInjectionRisk    Code = "INJECTION_RISK"
	CodeInvalidBound     Code = "INVALID_BOUND"
	CodeInvalidDirection Code = "INVALID_DIRECTION"
)

// Compilation errors.
const (
	CodeNoMatchClause Code = "NO_MATCH_CLAUSE"
)

// Operation chain errors.
const (
	CodeUnknownOperation Code = "UNKNOWN_OPERATION"
	CodeInvalidOperation Code = "INVALID_OPERATION"
)
