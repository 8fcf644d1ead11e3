package validate

import (
	"reflect"
	"strings"

	"github.com/maraichr/iypquery/pkg/qerr"
)

// dangerousPatterns are matched case-insensitively as substrings. This is a
// heuristic denylist, not a parser: values always travel as parameters, so
// the guard only adds a second line of defence for inline filter values.
var dangerousPatterns = []string{
	"DELETE", "CREATE", "MERGE", "SET", "REMOVE",
	"DETACH", "DROP", "CALL", "FOREACH", "LOAD",
	"//", "/*", "*/", "--",
}

// CheckInjection rejects string values (and string elements of lists) that
// contain a data-mutating keyword or a comment delimiter.
func CheckInjection(value any) error {
	switch v := value.(type) {
	case string:
		return checkString(v)
	case nil:
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i)
		if el.Kind() == reflect.Interface {
			el = el.Elem()
		}
		if el.IsValid() && el.Kind() == reflect.String {
			if err := checkString(el.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkString(s string) error {
	upper := strings.ToUpper(s)
	for _, p := range dangerousPatterns {
		if strings.Contains(upper, p) {
			return qerr.InjectionRisk(p)
		}
	}
	return nil
}
