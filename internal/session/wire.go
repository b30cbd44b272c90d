package session

import "github.com/ms1708/academy-portal/internal/domain"

// Backend endpoint paths consumed by the session store. Base URL comes from
// configuration.
const (
	endpointLogin          = "auth/login"
	endpointLogout         = "auth/logout"
	endpointRegister       = "auth/register"
	endpointRefresh        = "auth/refresh"
	endpointForgotPassword = "auth/forgot-password"
	endpointChangePassword = "auth/change-password"
	endpointProfile        = "auth/profile"
	endpointConfirmOTP     = "Account/ConfirmRegistration"
	endpointResendOTP      = "Account/ResendOTP"
)

// LoginRequest is the credentials payload for auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the authenticated payload returned by login and refresh.
type LoginResponse struct {
	User         domain.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// RegisterResponse acknowledges account creation. The token is present only
// when the backend issues one straight after signup.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// UpdateProfileRequest carries partial profile fields; zero values are
// omitted from the wire payload.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type confirmOTPRequest struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	OTPText  string `json:"otptext"`
}
