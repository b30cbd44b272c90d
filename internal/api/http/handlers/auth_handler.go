package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ms1708/academy-portal/internal/api/dto"
	"github.com/ms1708/academy-portal/internal/session"
	apperrors "github.com/ms1708/academy-portal/pkg/util"
)

// AuthHandler exposes the session-store operations over HTTP.
type AuthHandler struct {
	sessions *session.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *session.Store) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email and password required")
	}

	sess, err := h.sessions.Login(c.UserContext(), session.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user":      sess.User,
		"expiresAt": sess.ExpiresAt,
	}})
}

// Logout handles POST /auth/logout. Always succeeds locally.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"authenticated": false}})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return apperrors.NewBadRequest("firstName, lastName, email, password required")
	}

	resp, err := h.sessions.Register(c.UserContext(), session.RegisterRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

// VerifyOTP handles POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Username == "" || req.OTP == "" {
		return apperrors.NewBadRequest("username and otp required")
	}

	if err := h.sessions.VerifyOTP(c.UserContext(), req.UserID, req.Username, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"verified": true}})
}

// ResendOTP handles POST /auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" {
		return apperrors.NewBadRequest("email required")
	}

	if err := h.sessions.ResendOTP(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sent": true}})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" {
		return apperrors.NewBadRequest("email required")
	}

	if err := h.sessions.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sent": true}})
}

// ChangePassword handles PUT /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewBadRequest("currentPassword and newPassword required")
	}

	if err := h.sessions.ChangePassword(c.UserContext(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	user, err := h.sessions.UpdateProfile(c.UserContext(), session.UpdateProfileRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	resp := dto.SessionResponse{Authenticated: h.sessions.IsAuthenticated()}
	if sess := h.sessions.Current(); sess != nil {
		user := sess.User
		resp.User = &user
		expires := sess.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return c.JSON(fiber.Map{"data": resp})
}
