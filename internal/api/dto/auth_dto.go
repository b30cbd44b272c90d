package dto

import (
	"time"

	"github.com/ms1708/academy-portal/internal/domain"
)

// LoginRequest payload for portal login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for account creation.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// VerifyOTPRequest confirms a registration code.
type VerifyOTPRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	OTP      string `json:"otp"`
}

// ResendOTPRequest asks for a fresh registration code.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordRequest triggers the reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest rotates the authenticated user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest carries partial profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// SessionResponse reports the current authentication state.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
}
