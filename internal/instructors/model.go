package instructors

import (
	"time"

	"academy-backend/internal/media"
)

type Instructor struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	NameEn       string       `bson:"name_en" json:"name_en"`
	NameAr       string       `bson:"name_ar" json:"name_ar"`
	ExperienceEn string       `bson:"experience_en" json:"experience_en"`
	ExperienceAr string       `bson:"experience_ar" json:"experience_ar"`
	LinkedInURL  string       `bson:"linkedin_url" json:"linkedin_url"`
	Photo        *media.Asset `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	NameEn       string      `json:"name_en" validate:"required"`
	NameAr       string      `json:"name_ar" validate:"required"`
	ExperienceEn string      `json:"experience_en" validate:"required"`
	ExperienceAr string      `json:"experience_ar" validate:"required"`
	LinkedInURL  string      `json:"linkedin_url" validate:"required,linkedin"`
	Photo        *AssetInput `json:"photo"`
}

type AssetInput struct {
	URL          string `json:"url" validate:"required,url"`
	PublicID     string `json:"public_id" validate:"required"`
	ResourceType string `json:"resource_type"`
}

func (a *AssetInput) asset() *media.Asset {
	if a == nil {
		return nil
	}
	return &media.Asset{
		URL:          a.URL,
		PublicID:     a.PublicID,
		ResourceType: a.ResourceType,
	}
}
