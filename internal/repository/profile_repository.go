package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hirelink/internal/model"
)

// ProfileRepository defines talent profile persistence operations.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error)
	Upsert(ctx context.Context, profile *model.TalentProfile) error
	ListWithUsers(ctx context.Context, limit int) ([]model.TalentProfile, error)
	ListEmbedded(ctx context.Context) ([]model.TalentProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID finds the profile of a talent user.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.TalentProfile, error) {
	var profile model.TalentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile or updates every column of the existing one.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.TalentProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

// ListWithUsers lists the most recently updated profiles with their users.
func (r *profileRepository) ListWithUsers(ctx context.Context, limit int) ([]model.TalentProfile, error) {
	var profiles []model.TalentProfile
	q := r.db.WithContext(ctx).Preload("User").Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListEmbedded lists profiles that have a search vector.
func (r *profileRepository) ListEmbedded(ctx context.Context) ([]model.TalentProfile, error) {
	var profiles []model.TalentProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("embedding IS NOT NULL").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
