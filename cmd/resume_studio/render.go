package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/session"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the cached session to a LaTeX document",
	Long:  "Restore the cached generation session, derive the customized LaTeX document for the active variation, and optionally compile it to PDF.",
	RunE:  runRender,
}

var (
	renderVariation string
	renderTexOut    string
	renderPDFOut    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderVariation, "variation", "v", "", "Variation ID to render (default: active variation)")
	renderCmd.Flags().StringVarP(&renderTexOut, "tex", "x", "", "Path to write the LaTeX document (default: stdout)")
	renderCmd.Flags().StringVarP(&renderPDFOut, "pdf", "f", "", "Path to write a compiled PDF")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
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

	sess := session.New(ctx, st, logger)
	restored, err := sess.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !restored {
		return fmt.Errorf("no cached session found; run generate first")
	}

	if renderVariation != "" {
		if err := sess.SelectVariation(renderVariation); err != nil {
			return err
		}
	}

	document := sess.Document()
	if renderTexOut != "" {
		if err := os.WriteFile(renderTexOut, []byte(document), 0o644); err != nil {
			return fmt.Errorf("failed to write LaTeX document: %w", err)
		}
		fmt.Fprintf(os.Stdout, "LaTeX: %s\n", renderTexOut)
	} else {
		fmt.Fprintln(os.Stdout, document)
	}

	if renderPDFOut != "" {
		pdf, err := newCompiler(cfg).Compile(ctx, document)
		if err != nil {
			return fmt.Errorf("failed to compile PDF: %w", err)
		}
		if err := os.WriteFile(renderPDFOut, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Fprintf(os.Stdout, "PDF: %s\n", renderPDFOut)
	}
	return nil
}
