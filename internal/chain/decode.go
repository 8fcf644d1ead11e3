package chain

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/maraichr/iypquery/internal/condition"
	"github.com/maraichr/iypquery/internal/traversal"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// Decode parses a chain document: a YAML (or JSON) sequence whose items are
// either a bare operation name or a single-key map from operation name to
// its arguments.
//
//   - find: {kind: AS, filters: {asn: 2497}}
//   - upstream: {hops: 2}
//   - where: {as.name: {contains: IIJ}}
//   - limit: 10
//
// Unknown operations and unknown argument fields are rejected.
func Decode(data []byte) ([]Operation, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, qerr.Wrap(qerr.CodeInvalidOperation, "parse operation chain", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, qerr.InvalidOperation("chain", "empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, qerr.InvalidOperation("chain", "expected a list of operations")
	}

	ops := make([]Operation, 0, len(root.Content))
	for i, item := range root.Content {
		op, err := decodeStep(item)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func decodeStep(n *yaml.Node) (Operation, error) {
	var name string
	var body *yaml.Node
	switch n.Kind {
	case yaml.ScalarNode:
		name = n.Value
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, qerr.InvalidOperation("chain", "each step must name exactly one operation")
		}
		name, body = n.Content[0].Value, n.Content[1]
	default:
		return nil, qerr.InvalidOperation("chain", "each step must be an operation name or a single-key map")
	}
	if isNull(body) {
		body = nil
	}

	kind := Kind(name)
	switch kind {
	case KindFind:
		return decodeFind(body)
	case KindRelate:
		return decodeRelate(body)
	case KindWhere, KindHaving:
		cond, err := decodeCondition(kind, body)
		if err != nil {
			return nil, err
		}
		if kind == KindWhere {
			return Where{Cond: cond}, nil
		}
		return Having{Cond: cond}, nil
	case KindReturn:
		fields, err := decodeFields(kind, body)
		return Return{Fields: fields}, err
	case KindGroupBy:
		fields, err := decodeFields(kind, body)
		return GroupBy{Fields: fields}, err
	case KindOrderBy:
		fields, err := decodeFields(kind, body)
		return OrderBy{Fields: fields}, err
	case KindLimit:
		n, err := decodeInt(kind, body)
		return Limit{N: n}, err
	case KindSkip:
		n, err := decodeInt(kind, body)
		return Skip{N: n}, err
	case KindUpstream, KindDownstream, KindPeers, KindOrganization, KindCountry,
		KindCategory, KindIXP, KindPrefixes, KindSiblings, KindExternalIDs:
		return decodeTraverse(kind, body)
	default:
		return nil, qerr.UnknownOperation(name)
	}
}

func decodeFind(body *yaml.Node) (Operation, error) {
	if body == nil {
		return nil, qerr.InvalidOperation(string(KindFind), "node kind is required")
	}
	if body.Kind == yaml.ScalarNode {
		return Find{NodeKind: body.Value}, nil
	}
	var args struct {
		Kind    string         `yaml:"kind"`
		Alias   string         `yaml:"alias"`
		Filters map[string]any `yaml:"filters"`
	}
	if err := decodeStrict(KindFind, body, &args, "kind", "alias", "filters"); err != nil {
		return nil, err
	}
	if args.Kind == "" {
		return nil, qerr.InvalidOperation(string(KindFind), "node kind is required")
	}
	return Find{NodeKind: args.Kind, Alias: args.Alias, Filters: args.Filters}, nil
}

func decodeRelate(body *yaml.Node) (Operation, error) {
	if body == nil {
		return nil, qerr.InvalidOperation(string(KindRelate), "relationship is required")
	}
	if body.Kind == yaml.ScalarNode {
		return Relate{Relationship: body.Value}, nil
	}
	var args struct {
		Relationship string `yaml:"relationship"`
		To           string `yaml:"to"`
		From         string `yaml:"from"`
		Alias        string `yaml:"alias"`
		Direction    string `yaml:"direction"`
		Hops         int    `yaml:"hops"`
	}
	if err := decodeStrict(KindRelate, body, &args, "relationship", "to", "from", "alias", "direction", "hops"); err != nil {
		return nil, err
	}
	if args.Relationship == "" {
		return nil, qerr.InvalidOperation(string(KindRelate), "relationship is required")
	}
	dir, err := traversal.ParseDirection(args.Direction)
	if err != nil {
		return nil, err
	}
	return Relate{
		Relationship: args.Relationship,
		To:           args.To,
		From:         args.From,
		Alias:        args.Alias,
		Direction:    dir,
		Hops:         args.Hops,
	}, nil
}

func decodeTraverse(kind Kind, body *yaml.Node) (Operation, error) {
	if body == nil {
		return Traverse{Op: kind}, nil
	}
	var args struct {
		From  string `yaml:"from"`
		Alias string `yaml:"alias"`
		Hops  int    `yaml:"hops"`
	}
	if err := decodeStrict(kind, body, &args, "from", "alias", "hops"); err != nil {
		return nil, err
	}
	return Traverse{Op: kind, From: args.From, Alias: args.Alias, Hops: args.Hops}, nil
}

func decodeCondition(kind Kind, body *yaml.Node) (condition.Condition, error) {
	if body == nil || body.Kind != yaml.MappingNode {
		return nil, qerr.InvalidOperation(string(kind), "expected a condition map")
	}
	var m map[string]any
	if err := body.Decode(&m); err != nil {
		return nil, qerr.Wrap(qerr.CodeInvalidOperation, string(kind), err)
	}
	return condition.FromMap(m)
}

func decodeFields(kind Kind, body *yaml.Node) ([]string, error) {
	if body == nil {
		return nil, qerr.InvalidOperation(string(kind), "at least one field is required")
	}
	if body.Kind == yaml.ScalarNode {
		return []string{body.Value}, nil
	}
	if body.Kind != yaml.SequenceNode {
		return nil, qerr.InvalidOperation(string(kind), "expected a field or a list of fields")
	}
	fields := make([]string, 0, len(body.Content))
	for _, item := range body.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, qerr.InvalidOperation(string(kind), "fields must be strings")
		}
		fields = append(fields, item.Value)
	}
	return fields, nil
}

func decodeInt(kind Kind, body *yaml.Node) (int, error) {
	var n int
	if body == nil || body.Kind != yaml.ScalarNode || body.Decode(&n) != nil {
		return 0, qerr.InvalidOperation(string(kind), "expected an integer")
	}
	return n, nil
}

// decodeStrict decodes a mapping into out after checking every key is allowed.
func decodeStrict(kind Kind, body *yaml.Node, out any, allowed ...string) error {
	if body.Kind != yaml.MappingNode {
		return qerr.InvalidOperation(string(kind), "expected a mapping")
	}
	for i := 0; i < len(body.Content); i += 2 {
		key := body.Content[i].Value
		if !slices.Contains(allowed, key) {
			return qerr.InvalidOperation(string(kind), fmt.Sprintf("unknown field '%s'", key)).WithDetails(allowed...)
		}
	}
	if err := body.Decode(out); err != nil {
		return qerr.Wrap(qerr.CodeInvalidOperation, string(kind), err)
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
