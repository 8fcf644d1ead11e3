package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

func convertRecord(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertValue(v)
	}
	return out
}

// convertValue turns driver graph types into maps and lists so rows can be
// rendered as JSON or tables.
func convertValue(v any) any {
	switch x := v.(type) {
	case dbtype.Node:
		return nodeMap(x)
	case dbtype.Relationship:
		return relationshipMap(x)
	case dbtype.Path:
		nodes := make([]any, 0, len(x.Nodes))
		for _, n := range x.Nodes {
			nodes = append(nodes, nodeMap(n))
		}
		rels := make([]any, 0, len(x.Relationships))
		for _, r := range x.Relationships {
			rels = append(rels, relationshipMap(r))
		}
		return map[string]any{"nodes": nodes, "relationships": rels}
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = convertValue(el)
		}
		return out
	case map[string]any:
		return convertRecord(x)
	}
	return v
}

func nodeMap(n dbtype.Node) map[string]any {
	return map[string]any{
		"id":         n.ElementId,
		"labels":     n.Labels,
		"properties": convertRecord(n.Props),
	}
}

func relationshipMap(r dbtype.Relationship) map[string]any {
	return map[string]any{
		"id":         r.ElementId,
		"type":       r.Type,
		"start":      r.StartElementId,
		"end":        r.EndElementId,
		"properties": convertRecord(r.Props),
	}
}
