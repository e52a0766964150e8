package partners

import (
	"time"

	"academy-backend/internal/media"
)

// Partner covers both accreditation bodies and leading companies; the two
// live in separate collections but share a shape.
type Partner struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	NameEn    string       `bson:"name_en" json:"name_en"`
	NameAr    string       `bson:"name_ar" json:"name_ar"`
	Logo      *media.Asset `bson:"logo,omitempty" json:"logo"`
	SortOrder int          `bson:"sort_order" json:"sort_order"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	NameEn    string      `json:"name_en" validate:"required"`
	NameAr    string      `json:"name_ar" validate:"required"`
	Logo      *AssetInput `json:"logo"`
	SortOrder *int        `json:"sort_order" validate:"omitempty,gte=0"`
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
