// Command iypq compiles operation chains into Cypher for the Internet Yellow
// Pages graph and optionally runs them against a Neo4j instance.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maraichr/iypquery/internal/chain"
	"github.com/maraichr/iypquery/internal/config"
	"github.com/maraichr/iypquery/internal/graph"
	"github.com/maraichr/iypquery/internal/schema"
)

var version = "dev"

func main() {
	_ = godotenv.Load() // ignore error if .env missing

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by the query commands.
type options struct {
	file   string
	asJSON bool
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iypq",
		Short: "Build Cypher queries for the Internet Yellow Pages graph",
		Long: `iypq reads an operation chain (YAML or JSON) and compiles it into a
parameterized Cypher query. A chain is a list of operations:

  - find: {kind: AS, filters: {asn: 2497}}
  - upstream: {hops: 2}
  - where: {as_1.name: {contains: IIJ}}
  - limit: 10

compile prints the query; run and count execute it read-only against the
database configured by NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD and NEO4J_DATABASE.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(compileCmd(), runCmd(), countCmd(), schemaCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iypq version %s\n", version)
		},
	})
	return cmd
}

func addChainFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "Chain file (YAML or JSON); - reads stdin")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")
}

func compileCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a chain into Cypher without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			data, err := readChain(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}
			res, err := chain.NewTranslator(newLogger(cmd.ErrOrStderr(), cfg)).TranslateDocument(data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]any{
					"chain":       res.Chain(),
					"query":       res.Query.Text,
					"parameters":  res.Query.Params,
					"explanation": res.Explanation,
				})
			}
			fmt.Fprintf(out, "// %s\n%s\n", res.Chain(), res.Query.Text)
			if len(res.Query.Params) > 0 {
				fmt.Fprintln(out)
				return writeJSON(out, res.Query.Params)
			}
			return nil
		},
	}
	addChainFlags(cmd, &opts)
	return cmd
}

func runCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compile a chain and execute it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *graph.Client, tr *chain.Translator, data []byte) error {
				res, err := tr.TranslateDocument(data)
				if err != nil {
					return err
				}
				rows, err := client.Run(ctx, res.Query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.asJSON {
					return writeJSON(out, rows.Rows)
				}
				fmt.Fprintln(out, strings.Join(rows.Columns, "\t"))
				for _, row := range rows.Rows {
					cells := make([]string, len(rows.Columns))
					for i, col := range rows.Columns {
						cells[i] = fmt.Sprint(row[col])
					}
					fmt.Fprintln(out, strings.Join(cells, "\t"))
				}
				return nil
			}, &opts)
		},
	}
	addChainFlags(cmd, &opts)
	return cmd
}

func countCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the rows a chain matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *graph.Client, tr *chain.Translator, data []byte) error {
				ops, err := chain.Decode(data)
				if err != nil {
					return err
				}
				b, _, err := tr.Build(ops)
				if err != nil {
					return err
				}
				n, err := client.Count(ctx, b)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]int64{"count": n})
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}, &opts)
		},
	}
	addChainFlags(cmd, &opts)
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [kind]",
		Short: "List node kinds and their properties, or describe one kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				kind, err := schema.ParseNodeKind(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", kind, propertyList(kind))
				return nil
			}
			for _, k := range schema.NodeKinds() {
				fmt.Fprintf(out, "%s\t%s\n", k, propertyList(k))
			}
			fmt.Fprintln(out)
			for _, r := range schema.RelationshipKinds() {
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
}

func withClient(cmd *cobra.Command, fn func(context.Context, *graph.Client, *chain.Translator, []byte) error, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	data, err := readChain(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := graph.NewClient(cfg.Neo4j, cfg.Query.Timeout, logger)
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	return fn(ctx, client, chain.NewTranslator(logger), data)
}

func readChain(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chain file: %w", err)
	}
	return data, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.Level}))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func propertyList(kind schema.NodeKind) string {
	props := schema.AllowedProperties(kind)
	if len(props) == 0 {
		return "*"
	}
	return strings.Join(props, ",")
}
