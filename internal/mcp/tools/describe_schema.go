package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maraichr/iypquery/internal/chain"
	"github.com/maraichr/iypquery/internal/mcp"
	"github.com/maraichr/iypquery/internal/schema"
)

// DescribeSchemaParams are the parameters for the describe_schema tool.
type DescribeSchemaParams struct {
	Kind string `json:"kind,omitempty"` // node kind to describe; empty lists everything
}

// DescribeSchemaHandler implements the describe_schema MCP tool.
type DescribeSchemaHandler struct {
	maxTokens int
	logger    *slog.Logger
}

// NewDescribeSchemaHandler creates a new handler.
func NewDescribeSchemaHandler(maxTokens int, logger *slog.Logger) *DescribeSchemaHandler {
	return &DescribeSchemaHandler{maxTokens: maxTokens, logger: logger}
}

// Handle lists node kinds, their queryable properties, relationship kinds
// and chain operations.
func (h *DescribeSchemaHandler) Handle(ctx context.Context, params DescribeSchemaParams) (string, error) {
	rb := mcp.NewResponseBuilder(h.maxTokens)

	if params.Kind != "" {
		kind, err := schema.ParseNodeKind(params.Kind)
		if err != nil {
			return "", err
		}
		rb.AddHeader(fmt.Sprintf("**%s**", kind))
		rb.AddLine("Properties: " + propertyList(kind))
		if schema.IsPrefixKind(kind) {
			rb.AddLine("Prefix subtype: nodes also carry the `Prefix` label.")
		}
		return rb.Finalize(0, 0), nil
	}

	kinds := schema.NodeKinds()
	rb.AddHeader(fmt.Sprintf("**IYP schema** (%d node kinds)", len(kinds)))
	rb.AddLine("### Node kinds")
	shown := 0
	for _, k := range kinds {
		if !rb.AddLine(fmt.Sprintf("- **%s**: %s", k, propertyList(k))) {
			break
		}
		shown++
	}

	rels := make([]string, 0, len(schema.RelationshipKinds()))
	for _, r := range schema.RelationshipKinds() {
		rels = append(rels, string(r))
	}
	rb.AddSection("Relationship kinds", strings.Join(rels, ", "))

	ops := make([]string, 0, len(chain.Kinds()))
	for _, k := range chain.Kinds() {
		ops = append(ops, "`"+string(k)+"`")
	}
	rb.AddSection("Chain operations", strings.Join(ops, ", "))
	return rb.Finalize(len(kinds), shown), nil
}

func propertyList(kind schema.NodeKind) string {
	props := schema.AllowedProperties(kind)
	if len(props) == 0 {
		return "any property"
	}
	return strings.Join(props, ", ")
}
