package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rangbot-io/rangbotgo/internal/config"
	"google.golang.org/api/option"
)

// Detector produces advisory text for reported strawberry disease detections
// using Google Gemini.
type Detector struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewDetector creates a Gemini-backed detection advisor
func NewDetector(ctx context.Context, cfg config.DetectionConfig) (*Detector, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	modelName := cfg.GeminiModel
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are an agronomy assistant for strawberry growers. " +
				"Given a detected disease, reply with a short practical advisory: " +
				"what the disease is, how it spreads, and the immediate treatment steps. " +
				"Keep it under 150 words and avoid chemical brand names.",
		)},
	}

	return &Detector{
		client: client,
		model:  model,
	}, nil
}

// Close closes the client connection
func (d *Detector) Close() {
	if d.client != nil {
		d.client.Close()
	}
}

// Analyze returns a treatment advisory for the named disease. Location is
// optional context (greenhouse block, field name).
func (d *Detector) Analyze(ctx context.Context, disease, location string) (string, error) {
	prompt := "Detected disease: " + disease
	if strings.TrimSpace(location) != "" {
		prompt += "\nLocation: " + location
	}

	resp, err := d.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var fullText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullText += string(txt)
		}
	}

	return strings.TrimSpace(fullText), nil
}
