package models

import "time"

// Feedback is a shopper's rating and comment on a product.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"created_at"`
}
