package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/ai"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tailored resume variations for a job posting",
	Long:  "Fetch a job posting from a URL or text file, generate 1-3 tailored resume content variations, and cache them as the active session for later rendering.",
	RunE:  runGenerate,
}

var (
	genURL       string
	genFile      string
	genBriefFile string
	genJobID     string
	genTone      string
	genCount     int
	genOut       string
)

func init() {
	generateCmd.Flags().StringVarP(&genURL, "url", "u", "", "URL to fetch the job posting from")
	generateCmd.Flags().StringVarP(&genFile, "posting-file", "p", "", "Path to a text file containing the job posting")
	generateCmd.Flags().StringVarP(&genBriefFile, "brief", "b", "", "Path to the candidate brief text file (required)")
	generateCmd.Flags().StringVarP(&genJobID, "job-id", "j", "", "Identifier for the job (required)")
	generateCmd.Flags().StringVarP(&genTone, "tone", "t", string(types.ToneBalanced), "Generation tone: impact, technical, leadership or balanced")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 3, "Number of variations to generate (1-3)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Optional path to write the generation result JSON")

	generateCmd.MarkFlagRequired("brief")
	generateCmd.MarkFlagRequired("job-id")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genURL == "" && genFile == "" {
		return fmt.Errorf("either --url or --posting-file must be provided")
	}
	if genURL != "" && genFile != "" {
		return fmt.Errorf("--url and --posting-file are mutually exclusive; provide only one")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx := cmd.Context()

	var posting string
	if genURL != "" {
		posting, err = fetch.Posting(ctx, genURL, fetch.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
	} else {
		data, err := os.ReadFile(genFile)
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
		posting = string(data)
	}

	brief, err := os.ReadFile(genBriefFile)
	if err != nil {
		return fmt.Errorf("failed to read candidate brief: %w", err)
	}

	aiClient, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer aiClient.Close()

	result, err := aiClient.GenerateForJob(ctx, ai.GenerateRequest{
		JobID:          genJobID,
		JobDescription: posting,
		CandidateBrief: string(brief),
		Tone:           types.Tone(genTone),
		VariationCount: genCount,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	st, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sess := session.New(ctx, st, logger)
	sess.SetContent(genJobID, types.Tone(genTone), genCount, result)
	if err := sess.Persist(ctx); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}

	if genOut != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(genOut), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(genOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Result: %s\n", genOut)
	}

	fmt.Fprintf(os.Stdout, "Generated %d variation(s) for job %s\n", len(result.Variations), genJobID)
	for _, v := range result.Variations {
		fmt.Fprintf(os.Stdout, "  %s: %s\n", v.ID, v.Label)
	}
	return nil
}
