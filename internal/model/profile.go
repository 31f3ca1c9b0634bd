package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TalentProfile holds the resume, generated bio and search vector of a talent user.
type TalentProfile struct {
	ID                  uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID              uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	ResumeText          string    `json:"resume_text" gorm:"type:text"`
	Bio                 string    `json:"bio" gorm:"type:text"`
	WorkStylePreference string    `json:"work_style_preference,omitempty" gorm:"size:255"`
	IndustryPreference  string    `json:"industry_preference,omitempty" gorm:"size:255"`
	LocationPreference  string    `json:"location_preference,omitempty" gorm:"size:255"`
	Embedding           []float32 `json:"-" gorm:"type:json;serializer:json"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *TalentProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
