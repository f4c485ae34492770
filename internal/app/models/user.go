package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"jdoe1"`
	Email     string    `json:"email" db:"email" example:"jdoe@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	FirstName string    `json:"firstName" db:"first_name" example:"John"`
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
