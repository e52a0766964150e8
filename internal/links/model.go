package links

import "time"

// GeneralLinks is a single document holding the site-wide social URLs.
// The public endpoint returns the zero value when nothing has been saved yet.
type GeneralLinks struct {
	ID        string    `bson:"_id,omitempty" json:"-"`
	Facebook  string    `bson:"facebook" json:"facebook"`
	Twitter   string    `bson:"twitter" json:"twitter"`
	Instagram string    `bson:"instagram" json:"instagram"`
	LinkedIn  string    `bson:"linkedin" json:"linkedin"`
	YouTube   string    `bson:"youtube" json:"youtube"`
	WhatsApp  string    `bson:"whatsapp" json:"whatsapp"`
	Telegram  string    `bson:"telegram" json:"telegram"`
	Snapchat  string    `bson:"snapchat" json:"snapchat"`
	TikTok    string    `bson:"tiktok" json:"tiktok"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Facebook  string `json:"facebook" validate:"omitempty,url"`
	Twitter   string `json:"twitter" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,linkedin"`
	YouTube   string `json:"youtube" validate:"omitempty,url"`
	WhatsApp  string `json:"whatsapp" validate:"omitempty,url"`
	Telegram  string `json:"telegram" validate:"omitempty,url"`
	Snapchat  string `json:"snapchat" validate:"omitempty,url"`
	TikTok    string `json:"tiktok" validate:"omitempty,url"`
}
