package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maraichr/iypquery/internal/chain"
	"github.com/maraichr/iypquery/internal/graph"
	"github.com/maraichr/iypquery/internal/mcp"
	"github.com/maraichr/iypquery/internal/query"
)

// Runner executes compiled queries. *graph.Client satisfies it.
type Runner interface {
	Run(ctx context.Context, q query.Query) (*graph.Result, error)
	Count(ctx context.Context, b *query.Builder) (int64, error)
}

// RunQueryParams are the parameters for the run_query tool.
type RunQueryParams struct {
	Chain     string `json:"chain"`
	CountOnly bool   `json:"count_only,omitempty"`
}

// RunQueryHandler implements the run_query MCP tool.
type RunQueryHandler struct {
	translator *chain.Translator
	runner     Runner
	maxTokens  int
	logger     *slog.Logger
}

// NewRunQueryHandler creates a new handler. runner may be nil when no
// database is configured; the tool then reports an error.
func NewRunQueryHandler(t *chain.Translator, runner Runner, maxTokens int, logger *slog.Logger) *RunQueryHandler {
	return &RunQueryHandler{translator: t, runner: runner, maxTokens: maxTokens, logger: logger}
}

// Handle compiles the chain and executes it read-only.
func (h *RunQueryHandler) Handle(ctx context.Context, params RunQueryParams) (string, error) {
	ops, err := decodeChain(params.Chain)
	if err != nil {
		return "", err
	}
	if h.runner == nil {
		return "", fmt.Errorf("graph database is not configured")
	}

	if params.CountOnly {
		b, trail, err := h.translator.Build(ops)
		if err != nil {
			return "", err
		}
		n, err := h.runner.Count(ctx, b)
		if err != nil {
			return "", fmt.Errorf("count: %w", err)
		}
		res := chain.Result{Trail: trail}
		return fmt.Sprintf("**Count**: %d\n\nChain: `%s`\n", n, res.Chain()), nil
	}

	res, err := h.translator.Translate(ops)
	if err != nil {
		return "", err
	}
	out, err := h.runner.Run(ctx, res.Query)
	if err != nil {
		h.logger.Warn("run_query failed",
			slog.String("session", res.SessionID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	if len(out.Rows) == 0 {
		return fmt.Sprintf("No rows.\n\nChain: `%s`\n", res.Chain()), nil
	}
	rb := mcp.NewResponseBuilder(h.maxTokens)
	rb.AddHeader(fmt.Sprintf("**Results** (%d rows)", len(out.Rows)))
	rb.AddLine("Chain: `" + res.Chain() + "`\n")
	shown := rb.AddTable(out.Columns, out.Rows)
	return rb.Finalize(len(out.Rows), shown), nil
}
