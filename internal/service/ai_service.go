package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"hirelink/internal/cache"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/llm"
)

const embeddingCacheTTL = 24 * time.Hour

// LanguageModel is the subset of llm.Service the services depend on.
type LanguageModel interface {
	GenerateBio(ctx context.Context, in llm.BioInput) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ResumeExtractor turns an uploaded file into text.
type ResumeExtractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// AIService backs the embedding, resume extraction and bio endpoints.
type AIService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ExtractResume(ctx context.Context, r io.Reader) (string, error)
	GenerateBio(ctx context.Context, in llm.BioInput) (string, error)
}

type aiService struct {
	model     LanguageModel
	extractor ResumeExtractor
	cache     *cache.Client
	logger    *slog.Logger
}

// NewAIService builds an AIService. model may be nil when no API key is
// configured; model-backed calls then fail with ErrAIUnavailable.
func NewAIService(model LanguageModel, extractor ResumeExtractor, cache *cache.Client, logger *slog.Logger) AIService {
	if logger == nil {
		logger = slog.Default()
	}
	return &aiService{model: model, extractor: extractor, cache: cache, logger: logger}
}

func embeddingCacheKey(text string) string {
	return "embedding:" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Embed returns the embedding of text, served from redis when possible.
func (s *aiService) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", apperrors.ErrInvalidInput)
	}

	key := embeddingCacheKey(text)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []float32
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	if s.model == nil {
		return nil, apperrors.ErrAIUnavailable
	}
	vec, err := s.model.Embed(ctx, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "embedding failed", "error", err)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAIUnavailable, err)
	}

	if payload, err := json.Marshal(vec); err == nil {
		_ = s.cache.Set(ctx, key, payload, embeddingCacheTTL)
	}
	return vec, nil
}

// ExtractResume returns the plain text of a resume upload.
func (s *aiService) ExtractResume(ctx context.Context, r io.Reader) (string, error) {
	text, err := s.extractor.Extract(ctx, r)
	if err != nil {
		s.logger.WarnContext(ctx, "resume extraction failed", "error", err)
		return "", err
	}
	return text, nil
}

// GenerateBio writes a bio from a resume and preferences.
func (s *aiService) GenerateBio(ctx context.Context, in llm.BioInput) (string, error) {
	if strings.TrimSpace(in.ResumeText) == "" {
		return "", apperrors.ErrEmptyResume
	}
	if s.model == nil {
		return "", apperrors.ErrAIUnavailable
	}
	bio, err := s.model.GenerateBio(ctx, in)
	if err != nil {
		s.logger.ErrorContext(ctx, "bio generation failed", "error", err)
		return "", fmt.Errorf("%w: %w", apperrors.ErrAIUnavailable, err)
	}
	return bio, nil
}
