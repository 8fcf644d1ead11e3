package chain

import (
	"log/slog"
	"strings"

	"github.com/maraichr/iypquery/internal/query"
	"github.com/maraichr/iypquery/pkg/qerr"
)

// Result is a translated chain.
type Result struct {
	SessionID   string
	Query       query.Query
	Trail       []string
	Explanation string
}

// Chain renders the applied operations as `find(AS) → upstream(hops=2)`.
func (r Result) Chain() string { return strings.Join(r.Trail, " → ") }

// Translator applies operation chains to fresh query sessions.
type Translator struct {
	logger *slog.Logger
}

func NewTranslator(logger *slog.Logger) *Translator {
	return &Translator{logger: logger}
}

// Build applies ops in order to a new builder and returns it with the trail
// of applied operations. The first failing operation aborts the chain.
func (t *Translator) Build(ops []Operation) (*query.Builder, []string, error) {
	if len(ops) == 0 {
		return nil, nil, qerr.InvalidOperation("chain", "empty operation chain")
	}
	b := query.New()
	trail := make([]string, 0, len(ops))
	for i, op := range ops {
		if err := op.Apply(b); err != nil {
			t.logger.Debug("operation rejected",
				slog.String("session", b.ID()),
				slog.Int("index", i),
				slog.String("op", op.String()),
				slog.String("code", string(qerr.CodeOf(err))),
			)
			return nil, trail, qerr.OperationFailed(i, op.String(), err)
		}
		trail = append(trail, op.String())
	}
	return b, trail, nil
}

// Translate builds and compiles ops.
func (t *Translator) Translate(ops []Operation) (Result, error) {
	b, trail, err := t.Build(ops)
	if err != nil {
		return Result{}, err
	}
	q, err := b.Compile()
	if err != nil {
		return Result{}, err
	}
	t.logger.Debug("chain compiled",
		slog.String("session", b.ID()),
		slog.Int("operations", len(ops)),
		slog.Int("params", len(q.Params)),
	)
	return Result{
		SessionID:   b.ID(),
		Query:       q,
		Trail:       trail,
		Explanation: Explain(q.Text),
	}, nil
}

// TranslateDocument decodes a chain document and translates it.
func (t *Translator) TranslateDocument(data []byte) (Result, error) {
	ops, err := Decode(data)
	if err != nil {
		return Result{}, err
	}
	return t.Translate(ops)
}
