package condition

// Field is a bare field reference. It is inert until one of its operator
// methods turns it into a Predicate.
type Field string

// Q starts a predicate on the given field, e.g. Q("as.asn").Eq(15169).
func Q(field string) Field { return Field(field) }

func (f Field) pred(op Op, v any) Predicate {
	return Predicate{Field: string(f), Op: op, Value: v}
}

func (f Field) Eq(v any) Predicate         { return f.pred(OpEq, v) }
func (f Field) Ne(v any) Predicate         { return f.pred(OpNe, v) }
func (f Field) Lt(v any) Predicate         { return f.pred(OpLt, v) }
func (f Field) Le(v any) Predicate         { return f.pred(OpLe, v) }
func (f Field) Gt(v any) Predicate         { return f.pred(OpGt, v) }
func (f Field) Ge(v any) Predicate         { return f.pred(OpGe, v) }
func (f Field) In(values any) Predicate    { return f.pred(OpIn, values) }
func (f Field) NotIn(values any) Predicate { return f.pred(OpNotIn, values) }

func (f Field) Contains(s string) Predicate    { return f.pred(OpContains, s) }
func (f Field) StartsWith(s string) Predicate  { return f.pred(OpStartsWith, s) }
func (f Field) EndsWith(s string) Predicate    { return f.pred(OpEndsWith, s) }
func (f Field) Regex(pattern string) Predicate { return f.pred(OpRegex, pattern) }

func (f Field) IsNull() Predicate    { return f.pred(OpIsNull, nil) }
func (f Field) IsNotNull() Predicate { return f.pred(OpIsNotNull, nil) }
