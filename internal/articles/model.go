package articles

import (
	"time"

	"academy-backend/internal/media"
)

type Article struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	TitleEn   string       `bson:"title_en" json:"title_en"`
	TitleAr   string       `bson:"title_ar" json:"title_ar"`
	ContentEn string       `bson:"content_en" json:"content_en"`
	ContentAr string       `bson:"content_ar" json:"content_ar"`
	Author    string       `bson:"author" json:"author"`
	SlugEn    string       `bson:"slug_en" json:"slug_en"`
	SlugAr    string       `bson:"slug_ar" json:"slug_ar"`
	Cover     *media.Asset `bson:"cover,omitempty" json:"cover,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	TitleEn   string       `json:"title_en" validate:"required"`
	TitleAr   string       `json:"title_ar" validate:"required"`
	ContentEn string       `json:"content_en" validate:"required"`
	ContentAr string       `json:"content_ar" validate:"required"`
	Author    string       `json:"author" validate:"required"`
	SlugEn    string       `json:"slug_en" validate:"required,slug"`
	SlugAr    string       `json:"slug_ar" validate:"required"`
	Cover     *AssetInput  `json:"cover"`
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
