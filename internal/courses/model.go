package courses

import (
	"time"

	"academy-backend/internal/media"
)

type Course struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	NameEn        string       `bson:"name_en" json:"name_en"`
	NameAr        string       `bson:"name_ar" json:"name_ar"`
	SlugEn        string       `bson:"slug_en" json:"slug_en"`
	SlugAr        string       `bson:"slug_ar" json:"slug_ar"`
	DescriptionEn string       `bson:"description_en" json:"description_en"`
	DescriptionAr string       `bson:"description_ar" json:"description_ar"`
	TrainerID     string       `bson:"trainer_id" json:"trainer_id"`
	Image         *media.Asset `bson:"image,omitempty" json:"image,omitempty"`
	Price         int          `bson:"price" json:"price"`
	Currency      string       `bson:"currency" json:"currency"`
	DurationDays  int          `bson:"duration_days" json:"duration_days"`
	City          string       `bson:"city" json:"city"`
	StartDate     string       `bson:"start_date,omitempty" json:"start_date,omitempty"`
	Category      string       `bson:"category" json:"category"`
	Featured      bool         `bson:"featured" json:"featured"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	NameEn        string      `json:"name_en" validate:"required"`
	NameAr        string      `json:"name_ar" validate:"required"`
	SlugEn        string      `json:"slug_en" validate:"required,slug"`
	SlugAr        string      `json:"slug_ar" validate:"required"`
	DescriptionEn string      `json:"description_en" validate:"required"`
	DescriptionAr string      `json:"description_ar" validate:"required"`
	TrainerID     string      `json:"trainer_id" validate:"required,objectid"`
	Image         *AssetInput `json:"image"`
	Price         int         `json:"price" validate:"gte=0"`
	Currency      string      `json:"currency" validate:"omitempty,len=3"`
	DurationDays  int         `json:"duration_days" validate:"omitempty,gte=1"`
	City          string      `json:"city"`
	StartDate     string      `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Category      string      `json:"category"`
	Featured      bool        `json:"featured"`
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

type ListFilter struct {
	Category string
	Featured *bool
}
