package response

import (
	"time"

	"taxi-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func ProfileToResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		Email:     profile.Email,
		FullName:  profile.FullName,
		Phone:     profile.Phone,
		IsAdmin:   profile.IsAdmin,
		CreatedAt: profile.CreatedAt,
	}
}

func AuthToResponse(profile *entity.Profile, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserID:    profile.ID.String(),
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     profile.Email,
		FullName:  profile.FullName,
		IsAdmin:   profile.IsAdmin,
	}
}
