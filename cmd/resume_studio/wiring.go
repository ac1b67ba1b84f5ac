package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/compile"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/store"
)

// newLogger builds the process logger. Development encoding keeps console
// output readable for both the CLI and the local server.
func newLogger() (*zap.Logger, error) {
	return zap.NewDevelopment()
}

// newStore builds the persistence backend named by the configuration. The
// returned cleanup releases pooled connections and is safe to call always.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemory(), func() {}, nil
	case config.StoreFile:
		path := cfg.StorePath
		if path == "" {
			path = store.DefaultFilePath()
		}
		return store.NewFile(path), func() {}, nil
	case config.StorePostgres:
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// newCompiler prefers the external compile service and falls back to a local
// pdflatex toolchain when no endpoint is configured.
func newCompiler(cfg *config.Config) compile.Compiler {
	if cfg.CompileEndpoint != "" {
		return compile.NewHTTPCompiler(cfg.CompileEndpoint)
	}
	return compile.NewPDFLaTeX()
}
