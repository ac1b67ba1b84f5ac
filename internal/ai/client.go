// Package ai implements the AI content collaborators: resume generation,
// per-experience alternative phrasings and single-bullet regeneration.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// GenerateRequest asks for 1-3 tailored resume variations for a job.
type GenerateRequest struct {
	JobID          string
	JobDescription string
	CandidateBrief string
	Tone           types.Tone
	VariationCount int
}

// PhrasingRequest asks for alternative phrasings of one experience entry.
type PhrasingRequest struct {
	JobID              string
	ExperienceSourceID string
	ExperienceText     string
	Tone               types.Tone
	VariationCount     int
}

// BulletRequest asks for a replacement for a single bullet.
type BulletRequest struct {
	JobID              string
	ExperienceSourceID string
	Tone               types.Tone
	VariantID          string
	BulletIndex        int
	BulletText         string
}

// Client is the abstraction over AI providers.
type Client interface {
	GenerateForJob(ctx context.Context, req GenerateRequest) (*types.GenerationResult, error)
	AlternativePhrasings(ctx context.Context, req PhrasingRequest) (*types.PhrasingResult, error)
	RegenerateBullet(ctx context.Context, req BulletRequest) (string, error)
	Close() error
}

// DefaultModel is the Gemini model used for all generation calls.
const DefaultModel = "gemini-2.0-flash"

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// generateJSON issues one JSON-mode generation call.
func (c *GeminiClient) generateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GenerateForJob produces the full generation result. Variations are
// generated concurrently, one call each; profile and shared analysis come
// from a separate call. The assembled payload is schema-validated before it
// is returned.
func (c *GeminiClient) GenerateForJob(ctx context.Context, req GenerateRequest) (*types.GenerationResult, error) {
	if !types.ValidTone(req.Tone) {
		return nil, fmt.Errorf("unsupported tone: %s", req.Tone)
	}
	if req.VariationCount < 1 || req.VariationCount > 3 {
		return nil, fmt.Errorf("variation count must be 1-3, got %d", req.VariationCount)
	}

	variations := make([]types.Variation, req.VariationCount)
	var analysisRaw string

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < req.VariationCount; i++ {
		g.Go(func() error {
			raw, err := c.generateJSON(gctx, variationPrompt(req, i))
			if err != nil {
				return fmt.Errorf("variation %d: %w", i+1, err)
			}
			v, err := decodeVariation(raw)
			if err != nil {
				return fmt.Errorf("variation %d: %w", i+1, err)
			}
			if v.ID == "" {
				v.ID = fmt.Sprintf("variation-%d", i+1)
			}
			v.Tone = req.Tone
			variations[i] = *v
			return nil
		})
	}
	g.Go(func() error {
		raw, err := c.generateJSON(gctx, analysisPrompt(req))
		if err != nil {
			return fmt.Errorf("analysis: %w", err)
		}
		analysisRaw = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &types.GenerationResult{Variations: variations}
	if err := json.Unmarshal([]byte(analysisRaw), result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
	}
	result.Variations = variations

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode generation result: %w", err)
	}
	if err := schemas.ValidateGenerationResult(string(encoded)); err != nil {
		return nil, fmt.Errorf("generation result failed schema validation: %w", err)
	}
	return result, nil
}

// AlternativePhrasings produces alternative phrasings for one experience.
func (c *GeminiClient) AlternativePhrasings(ctx context.Context, req PhrasingRequest) (*types.PhrasingResult, error) {
	raw, err := c.generateJSON(ctx, phrasingPrompt(req))
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidatePhrasingResult(raw); err != nil {
		return nil, fmt.Errorf("phrasing result failed schema validation: %w", err)
	}
	var result types.PhrasingResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to decode phrasing result: %w", err)
	}
	return &result, nil
}

// RegenerateBullet produces one replacement bullet.
func (c *GeminiClient) RegenerateBullet(ctx context.Context, req BulletRequest) (string, error) {
	raw, err := c.generateJSON(ctx, bulletPrompt(req))
	if err != nil {
		return "", err
	}
	bullet, err := decodeBullet(raw)
	if err != nil {
		return "", err
	}
	return bullet, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in model response")
}
