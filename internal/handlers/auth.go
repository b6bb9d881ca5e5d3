package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/services"
	"github.com/Learnspoint11/moryastationery/internal/session"
	"github.com/Learnspoint11/moryastationery/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	auth     *services.AuthService
	sessions *session.Manager
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}

	if _, err := h.auth.Register(c.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(fiber.Map{"message": "Registered successfully"})
}

// Login authenticates an existing user and establishes a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}

	if err := h.sessions.Bind(c, user.ID.Hex(), user.Username); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}

	return c.JSON(fiber.Map{"message": "Login successful"})
}

// Logout destroys the session. Logging out an anonymous request succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Logout failed")
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// CheckAuth reports whether the request carries a live session.
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	if identity, ok := h.sessions.Current(c); ok {
		return c.JSON(fiber.Map{"loggedIn": true, "username": identity.Username})
	}
	return c.JSON(fiber.Map{"loggedIn": false})
}
