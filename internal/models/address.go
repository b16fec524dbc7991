package models

import "time"

// Address is a user's single delivery address. The user_id primary key means
// "save address" is always a full replace, never a partial patch.
type Address struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	FullName  string    `json:"full_name" validate:"required,max=100"`
	Phone     string    `json:"phone" validate:"required,min=7,max=20"`
	Line1     string    `json:"line1" validate:"required,max=200"`
	Line2     string    `json:"line2" validate:"omitempty,max=200"`
	City      string    `json:"city" validate:"required,max=100"`
	State     string    `json:"state" validate:"omitempty,max=100"`
	ZipCode   string    `json:"zip_code" validate:"required,max=20"`
	Country   string    `json:"country" validate:"omitempty,max=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
