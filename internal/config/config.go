package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Neo4j Neo4jConfig
	Query QueryConfig
	Log   LogConfig
	MCP   MCPConfig
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

type QueryConfig struct {
	Timeout time.Duration // QUERY_TIMEOUT_SECS
}

type LogConfig struct {
	Level slog.Level // LOG_LEVEL: debug, info, warn, error
}

type MCPConfig struct {
	Addr              string // MCP_ADDR: streamable HTTP listen address; empty means stdio
	MaxResponseTokens int    // MCP_MAX_RESPONSE_TOKENS
}

func Load() (*Config, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", "neo4j"),
		},
		Query: QueryConfig{
			Timeout: time.Duration(getEnvInt("QUERY_TIMEOUT_SECS", 30)) * time.Second,
		},
		Log: LogConfig{Level: level},
		MCP: MCPConfig{
			Addr:              getEnv("MCP_ADDR", ""),
			MaxResponseTokens: getEnvInt("MCP_MAX_RESPONSE_TOKENS", 4000),
		},
	}
	if cfg.Query.Timeout <= 0 {
		return nil, fmt.Errorf("QUERY_TIMEOUT_SECS must be positive")
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
