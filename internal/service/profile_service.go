package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "hirelink/internal/errors"
	"hirelink/internal/llm"
	"hirelink/internal/model"
	"hirelink/internal/repository"
)

// ProfileInput is what a talent submits about themselves.
type ProfileInput struct {
	ResumeText          string
	WorkStylePreference string
	IndustryPreference  string
	LocationPreference  string
}

// ProfileService manages talent profiles.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.TalentProfile, error)
	GenerateBio(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
	ai   AIService
}

// NewProfileService creates a profile service.
func NewProfileService(repo repository.ProfileRepository, ai AIService) ProfileService {
	return &profileService{repo: repo, ai: ai}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// SaveProfile stores the resume and preferences. Changing the resume clears
// the bio and search vector, which were derived from the old text.
func (s *profileService) SaveProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.TalentProfile, error) {
	resume := strings.TrimSpace(in.ResumeText)
	if resume == "" {
		return nil, apperrors.ErrEmptyResume
	}

	profile, err := s.GetProfile(ctx, userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		profile = &model.TalentProfile{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	if profile.ResumeText != resume {
		profile.Bio = ""
		profile.Embedding = nil
	}
	profile.ResumeText = resume
	profile.WorkStylePreference = strings.TrimSpace(in.WorkStylePreference)
	profile.IndustryPreference = strings.TrimSpace(in.IndustryPreference)
	profile.LocationPreference = strings.TrimSpace(in.LocationPreference)

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// GenerateBio writes a bio for the stored profile and indexes it for search.
func (s *profileService) GenerateBio(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	bio, err := s.ai.GenerateBio(ctx, llm.BioInput{
		ResumeText:          profile.ResumeText,
		WorkStylePreference: profile.WorkStylePreference,
		IndustryPreference:  profile.IndustryPreference,
		LocationPreference:  profile.LocationPreference,
	})
	if err != nil {
		return nil, err
	}

	vec, err := s.ai.Embed(ctx, searchDocument(profile, bio))
	if err != nil {
		return nil, err
	}

	profile.Bio = bio
	profile.Embedding = vec
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func searchDocument(p *model.TalentProfile, bio string) string {
	parts := []string{bio, p.ResumeText}
	for _, pref := range []string{p.WorkStylePreference, p.IndustryPreference, p.LocationPreference} {
		if pref != "" {
			parts = append(parts, pref)
		}
	}
	return strings.Join(parts, "\n\n")
}
