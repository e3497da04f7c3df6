package generation

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/vocadrill/practice-service/internal/utils"
	"google.golang.org/genai"
)

// passagePromptTemplate asks for a plain prose paragraph. The word count is
// kept low so blanks stay close together on screen.
const passagePromptTemplate = `Write a single short paragraph (40-80 words) in {{.Language}} for a language learner.
Use every one of the following words or phrases at least once, in any order: {{.Terms}}.
Keep the sentences simple. Respond with the paragraph only, no headings, lists or quotation marks.`

// GeminiGenerator implements PassageGenerator against Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	prompt *template.Template
	logger utils.Logger
}

// GeminiConfig carries the provider settings read from the environment.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// NewGeminiGenerator builds a generator with a live Gemini client.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig, logger utils.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	prompt, err := template.New("passage").Parse(passagePromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		prompt: prompt,
		logger: logger,
	}, nil
}

// GeneratePassage makes a single provider call. There is no retry or
// backoff here: a failed generation propagates to the caller, who shows a
// retryable error and lets the learner start over.
func (g *GeminiGenerator) GeneratePassage(ctx context.Context, language string, terms []string) (string, error) {
	if len(terms) == 0 {
		return "", fmt.Errorf("%w: no terms supplied", ErrGenerationFailed)
	}

	prompt, err := g.buildPrompt(language, terms)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	g.logger.InfoContext(ctx, "Requesting practice passage",
		"model", g.model,
		"language", language,
		"term_count", len(terms))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	passage, err := extractPassage(resp)
	if err != nil {
		return "", err
	}

	g.logger.InfoContext(ctx, "Generated practice passage", "passage_length", len(passage))
	return passage, nil
}

func (g *GeminiGenerator) buildPrompt(language string, terms []string) (string, error) {
	var sb strings.Builder
	err := g.prompt.Execute(&sb, struct {
		Language string
		Terms    string
	}{
		Language: language,
		Terms:    strings.Join(terms, ", "),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func extractPassage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyPassage
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", ErrEmptyPassage
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	passage := strings.TrimSpace(sb.String())
	if passage == "" {
		return "", ErrEmptyPassage
	}
	return passage, nil
}
