package dto

// ProfileResponse represents the authenticated user's profile
type ProfileResponse struct {
	UserResponse
}
