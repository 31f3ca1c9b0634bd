// Package llm wraps the language model used for bios, embeddings and resume
// text extraction.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxResumeChars bounds the resume text sent to the model.
const maxResumeChars = 20000

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// BioInput is the material a bio is written from.
type BioInput struct {
	ResumeText          string
	WorkStylePreference string
	IndustryPreference  string
	LocationPreference  string
}

// Service holds the model and embedder clients so they are not recreated per request.
type Service struct {
	model    llms.Model
	embedder embeddings.Embedder
}

// New builds a Service from existing clients.
func New(model llms.Model, embedder embeddings.Embedder) *Service {
	return &Service{model: model, embedder: embedder}
}

// NewGoogleAI builds a Service backed by Gemini.
func NewGoogleAI(ctx context.Context, apiKey, model, embeddingModel string) (*Service, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
		googleai.WithDefaultEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return New(client, embedder), nil
}

// GenerateBio writes a short professional bio from a resume.
func (s *Service) GenerateBio(ctx context.Context, in BioInput) (string, error) {
	prompt := fmt.Sprintf(bioPrompt,
		orNone(in.WorkStylePreference),
		orNone(in.IndustryPreference),
		orNone(in.LocationPreference),
		truncate(in.ResumeText, maxResumeChars),
	)

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt, llms.WithTemperature(0.4))
	if err != nil {
		return "", fmt.Errorf("generate bio: %w", err)
	}
	bio := cleanModelText(resp)
	if bio == "" {
		return "", ErrEmptyResponse
	}
	return bio, nil
}

// Embed returns the embedding vector of text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	if len(vec) == 0 {
		return nil, ErrEmptyResponse
	}
	return vec, nil
}

// ExtractDocumentText asks the model to transcribe a binary document such as
// a PDF into plain text.
func (s *Service) ExtractDocumentText(ctx context.Context, mimeType string, data []byte) (string, error) {
	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.BinaryPart(mimeType, data),
			llms.TextPart(extractionPrompt),
		},
	}

	resp, err := s.model.GenerateContent(ctx, []llms.MessageContent{msg}, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("extract document text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := cleanModelText(resp.Choices[0].Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not specified"
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// cleanModelText strips surrounding whitespace and markdown fences.
func cleanModelText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
