package models

import "gorm.io/gorm"

// Role controls which dashboard a user sees and which routes they may call.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRetailer   Role = "retailer"
	RoleWholesaler Role = "wholesaler"
	RoleAdmin      Role = "admin"
)

// IsSeller reports whether the role may list products and receive order splits.
func (r Role) IsSeller() bool {
	return r == RoleRetailer || r == RoleWholesaler
}

// User represents an account on Campus Bazaar: a shopper, a seller
// (retailer or wholesaler), or an admin.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       Role   `json:"role" gorm:"type:varchar(20);default:'customer'" validate:"omitempty,oneof=customer retailer wholesaler admin"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
