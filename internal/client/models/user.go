package models

// Profile is the authenticated user's profile as returned by the backend.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
