package query

// Aggregate expressions for ReturnFields and Having, e.g. Count("as") == "count(as)".

func Count(field string) string   { return "count(" + field + ")" }
func Sum(field string) string     { return "sum(" + field + ")" }
func Avg(field string) string     { return "avg(" + field + ")" }
func Min(field string) string     { return "min(" + field + ")" }
func Max(field string) string     { return "max(" + field + ")" }
func Collect(field string) string { return "collect(" + field + ")" }

// As appends an output name to an expression.
func As(expr, name string) string { return expr + " AS " + name }
