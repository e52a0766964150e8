package bookings

import "time"

type Booking struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Date         string    `bson:"date" json:"date"`
	City         string    `bson:"city" json:"city"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	Viewed       bool      `bson:"viewed" json:"viewed"`
	CaptchaScore float64   `bson:"captcha_score" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type CreateRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	City         string `json:"city" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	CaptchaToken string `json:"captcha_token" validate:"required"`
}

type ListFilter struct {
	Viewed *bool
}
