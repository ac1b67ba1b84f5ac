package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/ai"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Resume Studio HTTP API server",
	Long:  "Start the HTTP API server exposing generation, layout customization, bullet overrides, templates and the live LaTeX preview.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set to start the server")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx := cmd.Context()
	st, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	aiClient, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer aiClient.Close()

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		AuthEnabled: cfg.AuthEnabled,
		AI:          aiClient,
		Compiler:    newCompiler(cfg),
		Store:       st,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
