package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/maraichr/iypquery/internal/query"
)

// ErrNoRows is returned by Single when the query produced no record.
var ErrNoRows = errors.New("query returned no rows")

// Result holds the decoded records of one query.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Run executes q in a read transaction bounded by the client timeout.
// Graph values (nodes, relationships, paths) are converted to plain maps.
func (c *Client) Run(ctx context.Context, q query.Query) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	session := c.Session(ctx)
	defer session.Close(ctx)

	start := time.Now()
	res, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (*Result, error) {
		records, err := tx.Run(ctx, q.Text, q.Params)
		if err != nil {
			return nil, err
		}
		keys, err := records.Keys()
		if err != nil {
			return nil, err
		}
		out := &Result{Columns: keys}
		for records.Next(ctx) {
			out.Rows = append(out.Rows, convertRecord(records.Record().AsMap()))
		}
		if err := records.Err(); err != nil {
			return nil, err
		}
		return out, nil
	}, neo4j.WithTxTimeout(c.timeout))
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	c.logger.Debug("query executed",
		slog.Int("rows", len(res.Rows)),
		slog.Int("params", len(q.Params)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// Single runs q and returns its first row.
func (c *Client) Single(ctx context.Context, q query.Query) (map[string]any, error) {
	res, err := c.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNoRows
	}
	return res.Rows[0], nil
}

// Count executes the builder's count query and returns the scalar.
func (c *Client) Count(ctx context.Context, b *query.Builder) (int64, error) {
	q, err := b.CountQuery()
	if err != nil {
		return 0, err
	}
	row, err := c.Single(ctx, q)
	if err != nil {
		return 0, err
	}
	return countFrom(row)
}

func countFrom(row map[string]any) (int64, error) {
	v, ok := row["count"]
	if !ok {
		return 0, fmt.Errorf("count column missing")
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("count column has type %T", v)
	}
	return n, nil
}
