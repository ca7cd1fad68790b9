package model

import "time"

// Banner 首页轮播位
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	LinkURL   string    `json:"linkUrl,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Banner) Validate() error {
	if b.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if b.ImageURL == "" {
		return NewValidationError("imageUrl", "imageUrl is required")
	}
	return nil
}
