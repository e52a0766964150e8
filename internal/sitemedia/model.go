package sitemedia

import "time"

// HomeMediaItem is one entry of the ordered image/video strip on the home
// page.
type HomeMediaItem struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	MediaURL     string    `bson:"media_url" json:"media_url"`
	PublicID     string    `bson:"public_id" json:"public_id"`
	ResourceType string    `bson:"resource_type,omitempty" json:"resource_type,omitempty"`
	SortOrder    int       `bson:"sort_order" json:"sort_order"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// CityMedia is one of the fixed city slots shown on the locations page.
type CityMedia struct {
	City         string    `bson:"city" json:"city"`
	MediaURL     string    `bson:"media_url" json:"media_url"`
	PublicID     string    `bson:"public_id" json:"public_id"`
	ResourceType string    `bson:"resource_type,omitempty" json:"resource_type,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// CitySlots is the closed set of slots; requests naming any other city are
// rejected.
var CitySlots = []string{"riyadh", "jeddah", "dammam", "abha", "tabuk", "hail"}

func IsCitySlot(city string) bool {
	for _, slot := range CitySlots {
		if slot == city {
			return true
		}
	}
	return false
}

type AddHomeMediaRequest struct {
	MediaURL     string `json:"media_url" validate:"required,url"`
	PublicID     string `json:"public_id" validate:"required"`
	ResourceType string `json:"resource_type"`
	SortOrder    *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type SetCityMediaRequest struct {
	MediaURL     string `json:"media_url" validate:"required,url"`
	PublicID     string `json:"public_id" validate:"required"`
	ResourceType string `json:"resource_type"`
}
