package auth

import "github.com/jobsyde/jobsyde/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetupRequest creates the initial admin account. Gated by the setup
// secret, not by an existing session.
type SetupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	SetupSecret string `json:"setup_secret"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
