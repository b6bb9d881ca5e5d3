package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/middleware"
	"github.com/Learnspoint11/moryastationery/internal/services"
	"github.com/Learnspoint11/moryastationery/internal/utils"
)

// OTPHandler bundles dependencies for the mobile verification endpoints.
type OTPHandler struct {
	auth *services.AuthService
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(auth *services.AuthService) *OTPHandler {
	return &OTPHandler{auth: auth}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=10,max=13"`
}

// SendOTP issues a fresh verification code to the given mobile number.
func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Login required")
	}

	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "A valid mobile number is required")
	}

	if err := h.auth.SendOTP(c.Context(), userID, req.Mobile); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPRateLimited):
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many OTP requests, try again later")
		case errors.Is(err, services.ErrUserNotFound):
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "OTP send failed")
		}
	}

	return c.JSON(fiber.Map{"message": "OTP sent to mobile"})
}

// flexibleCode accepts the code as either a JSON string or a JSON number.
type flexibleCode string

func (f *flexibleCode) UnmarshalJSON(b []byte) error {
	*f = flexibleCode(strings.Trim(strings.TrimSpace(string(b)), `"`))
	return nil
}

type verifyOTPRequest struct {
	OTP flexibleCode `json:"otp"`
}

// VerifyOTP checks a submitted code and marks the account mobile-verified.
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Login required")
	}

	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "OTP is required")
	}

	if err := h.auth.VerifyOTP(c.Context(), userID, string(req.OTP)); err != nil {
		if errors.Is(err, services.ErrInvalidOrExpiredOTP) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired OTP")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "OTP verification failed")
	}

	return c.JSON(fiber.Map{"message": "Mobile verified successfully"})
}
