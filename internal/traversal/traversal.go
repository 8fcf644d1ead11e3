// Package traversal renders relationship hops as Cypher MATCH patterns.
package traversal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maraichr/iypquery/internal/schema"
	"github.com/maraichr/iypquery/internal/validate"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// MaxHops bounds variable-length traversals so results stay finite.
const MaxHops = 10

// Direction of a hop relative to the source node.
type Direction string

const (
	Out  Direction = "out"
	In   Direction = "in"
	Both Direction = "both"
)

// ParseDirection accepts out, in, both (or either/any). Empty means Out.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "out", "outgoing":
		return Out, nil
	case "in", "incoming":
		return In, nil
	case "both", "either", "any":
		return Both, nil
	}
	return "", qerr.InvalidDirection(s)
}

// Step describes one hop. Target and Alias are optional; Hops of 0 means 1.
type Step struct {
	Relationship schema.RelationshipKind
	Direction    Direction
	Target       schema.NodeKind
	Alias        string
	Hops         int
}

// Expand resolves the target alias of step, registers it in v and renders
// the pattern from source. ordinal is the step's position in the session and
// names kind-less targets. An explicit alias that is already registered and
// has no Target re-uses the existing node.
func Expand(v *validate.Validator, source string, step Step, ordinal int) (pattern, alias string, err error) {
	if !v.Has(source) {
		return "", "", qerr.UnknownSourceAlias(source)
	}
	hops := step.Hops
	if hops == 0 {
		hops = 1
	}
	if hops < 1 || hops > MaxHops {
		return "", "", qerr.InvalidHops(step.Hops, MaxHops)
	}
	dir := step.Direction
	if dir == "" {
		dir = Out
	}
	if dir != Out && dir != In && dir != Both {
		return "", "", qerr.InvalidDirection(string(dir))
	}

	alias = step.Alias
	label := step.Target
	switch {
	case alias == "":
		alias = AllocateAlias(v, step.Target, ordinal)
		err = v.RegisterAlias(alias, step.Target)
	case step.Target == "" && v.Has(alias):
		// bind to the existing node
	default:
		err = v.RegisterAlias(alias, step.Target)
	}
	if err != nil {
		return "", "", err
	}

	return render(source, node(alias, label), relToken(step.Relationship, hops), dir), alias, nil
}

// AllocateAlias derives an unused alias: the lowercased target kind, then
// kind_1, kind_2, ... on collision; node_<ordinal> when there is no kind.
func AllocateAlias(v *validate.Validator, target schema.NodeKind, ordinal int) string {
	base := "node_" + strconv.Itoa(ordinal)
	if target != "" {
		base = strings.ToLower(string(target))
	}
	alias := base
	for n := 1; v.Has(alias); n++ {
		alias = base + "_" + strconv.Itoa(n)
	}
	return alias
}

func node(alias string, kind schema.NodeKind) string {
	if kind == "" {
		return "(" + alias + ")"
	}
	return "(" + alias + ":" + string(kind) + ")"
}

func relToken(rel schema.RelationshipKind, hops int) string {
	if hops > 1 {
		return fmt.Sprintf("[:%s*1..%d]", rel, hops)
	}
	return "[:" + string(rel) + "]"
}

// render places the arrow so it always points along the relationship's
// stored direction: incoming hops point back at the source.
func render(source, target, rel string, dir Direction) string {
	switch dir {
	case In:
		return target + "-" + rel + "->(" + source + ")"
	case Both:
		return "(" + source + ")-" + rel + "-" + target
	default:
		return "(" + source + ")-" + rel + "->" + target
	}
}

// PathPattern renders an undirected bounded path between two bound aliases.
func PathPattern(from, to string, rel schema.RelationshipKind, maxHops int) string {
	return fmt.Sprintf("(%s)-[:%s*1..%d]-(%s)", from, rel, maxHops, to)
}

// ShortestPathPattern wraps PathPattern in shortestPath().
func ShortestPathPattern(from, to string, rel schema.RelationshipKind, maxHops int) string {
	return "shortestPath(" + PathPattern(from, to, rel, maxHops) + ")"
}
