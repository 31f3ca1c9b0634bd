package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
	"hirelink/internal/repository"
)

const defaultTalentLimit = 50

// TalentMatch is a talent profile ranked against a search query.
type TalentMatch struct {
	Profile model.TalentProfile
	Score   float64
}

// TalentService lists and searches talent for employers.
type TalentService interface {
	ListTalent(ctx context.Context, limit int) ([]model.TalentProfile, error)
	Search(ctx context.Context, query string, limit int) ([]TalentMatch, error)
}

type talentService struct {
	profiles repository.ProfileRepository
	ai       AIService
}

// NewTalentService creates a talent service.
func NewTalentService(profiles repository.ProfileRepository, ai AIService) TalentService {
	return &talentService{profiles: profiles, ai: ai}
}

// ListTalent returns the most recently updated profiles that have a bio.
func (s *talentService) ListTalent(ctx context.Context, limit int) ([]model.TalentProfile, error) {
	if limit <= 0 {
		limit = defaultTalentLimit
	}
	profiles, err := s.profiles.ListWithUsers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := profiles[:0]
	for _, p := range profiles {
		if p.Bio != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search ranks indexed profiles by cosine similarity to query.
func (s *talentService) Search(ctx context.Context, query string, limit int) ([]TalentMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", apperrors.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultTalentLimit
	}

	qvec, err := s.ai.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profiles.ListEmbedded(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	matches := make([]TalentMatch, 0, len(profiles))
	for _, p := range profiles {
		if len(p.Embedding) != len(qvec) {
			continue
		}
		matches = append(matches, TalentMatch{Profile: p, Score: cosineSimilarity(qvec, p.Embedding)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
