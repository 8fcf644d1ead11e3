package tools

import (
	"context"
	"log/slog"

	"github.com/maraichr/iypquery/internal/chain"
	"github.com/maraichr/iypquery/internal/mcp"
)

// CompileQueryParams are the parameters for the compile_query tool.
type CompileQueryParams struct {
	Chain string `json:"chain"` // YAML or JSON list of operations
}

// CompileQueryHandler implements the compile_query MCP tool.
type CompileQueryHandler struct {
	translator *chain.Translator
	maxTokens  int
	logger     *slog.Logger
}

// NewCompileQueryHandler creates a new handler.
func NewCompileQueryHandler(t *chain.Translator, maxTokens int, logger *slog.Logger) *CompileQueryHandler {
	return &CompileQueryHandler{translator: t, maxTokens: maxTokens, logger: logger}
}

// Handle compiles an operation chain into Cypher without executing it.
func (h *CompileQueryHandler) Handle(ctx context.Context, params CompileQueryParams) (string, error) {
	ops, err := decodeChain(params.Chain)
	if err != nil {
		return "", err
	}
	res, err := h.translator.Translate(ops)
	if err != nil {
		return "", err
	}
	h.logger.Info("compile_query",
		slog.String("session", res.SessionID),
		slog.String("chain", res.Chain()),
	)

	rb := mcp.NewResponseBuilder(h.maxTokens)
	rb.AddHeader("**Compiled query**")
	rb.AddLine("Chain: `" + res.Chain() + "`\n")
	rb.AddCodeBlock("cypher", res.Query.Text)
	rb.AddSection("Parameters", mcp.FormatParams(res.Query.Params))
	rb.AddSection("Explanation", res.Explanation)
	return rb.Finalize(0, 0), nil
}
