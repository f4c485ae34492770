package dto

import "github.com/yigit/eventsphere/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	UserID    int64  `json:"userId" example:"1"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	Token     string `json:"token"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=5"`
	Password        string `json:"password" binding:"required,min=8"`
	RetypedPassword string `json:"retypedPassword" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"firstName" binding:"required,min=2"`
	LastName        string `json:"lastName" binding:"required,min=2"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"jdoe1"`
	Email     string `json:"email" example:"jdoe@example.com"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
}

// NewUserResponse maps a user model to its public representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
