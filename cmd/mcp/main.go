package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maraichr/iypquery/internal/chain"
	"github.com/maraichr/iypquery/internal/config"
	"github.com/maraichr/iypquery/internal/graph"
	"github.com/maraichr/iypquery/internal/mcp/tools"
)

var version = "dev"

func main() {
	_ = godotenv.Load() // ignore error if .env missing

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// stdout carries the protocol on stdio
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Neo4j (optional; run_query is disabled without it)
	var runner tools.Runner
	client, err := graph.NewClient(cfg.Neo4j, cfg.Query.Timeout, logger)
	if err != nil {
		logger.Warn("neo4j unavailable, run_query disabled", slog.String("error", err.Error()))
	} else {
		defer client.Close(context.Background())
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := client.Verify(verifyCtx); err != nil {
			logger.Warn("neo4j not reachable yet", slog.String("uri", cfg.Neo4j.URI), slog.String("error", err.Error()))
		} else {
			logger.Info("connected to neo4j", slog.String("uri", cfg.Neo4j.URI), slog.String("database", cfg.Neo4j.Database))
		}
		cancel()
		runner = client
	}

	translator := chain.NewTranslator(logger)
	maxTokens := cfg.MCP.MaxResponseTokens

	compileQuery := tools.NewCompileQueryHandler(translator, maxTokens, logger)
	describeSchema := tools.NewDescribeSchemaHandler(maxTokens, logger)
	runQuery := tools.NewRunQueryHandler(translator, runner, maxTokens, logger)

	sdkServer := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "iypquery", Version: version}, nil)

	sdkmcp.AddTool(sdkServer, &sdkmcp.Tool{
		Name: "compile_query",
		Description: "Compile an operation chain (YAML or JSON list such as `[{find: {kind: AS, filters: {asn: 2497}}}, {upstream: {hops: 2}}]`) " +
			"into a parameterized Cypher query for the Internet Yellow Pages graph. Does not execute it.",
	}, tools.WrapHandler[tools.CompileQueryParams](compileQuery))

	sdkmcp.AddTool(sdkServer, &sdkmcp.Tool{
		Name:        "describe_schema",
		Description: "List IYP node kinds with their queryable properties, relationship kinds and supported chain operations. Pass `kind` to describe one node kind.",
	}, tools.WrapHandler[tools.DescribeSchemaParams](describeSchema))

	sdkmcp.AddTool(sdkServer, &sdkmcp.Tool{
		Name:        "run_query",
		Description: "Compile an operation chain and execute it read-only against the IYP database. Set `count_only` to return only the row count.",
	}, tools.WrapHandler[tools.RunQueryParams](runQuery))

	if cfg.MCP.Addr == "" {
		logger.Info("MCP server on stdio", slog.String("version", version))
		if err := sdkServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			logger.Error("MCP stdio server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	sdkHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return sdkServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
	mux := http.NewServeMux()
	mux.Handle("/mcp", sdkHandler)

	httpServer := &http.Server{Addr: cfg.MCP.Addr, Handler: mux}

	go func() {
		logger.Info("MCP server listening", slog.String("addr", cfg.MCP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP HTTP server error", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()
	logger.Info("MCP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("MCP HTTP shutdown", slog.String("error", err.Error()))
	}
	logger.Info("MCP server stopped")
}
