package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Username    string    `json:"username" db:"username" example:"okello.d"`
	Email       string    `json:"email" db:"email" example:"okello@example.ug"`
	Password    string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role        RoleType  `json:"role" db:"role" example:"student"`
	FirstName   string    `json:"firstName,omitempty" db:"first_name"`
	LastName    string    `json:"lastName,omitempty" db:"last_name"`
	PhoneNumber string    `json:"phoneNumber,omitempty" db:"phone_number"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
