package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/repository"
	"github.com/Learnspoint11/moryastationery/internal/session"
)

const (
	userIDContextKey   = "currentUserID"
	usernameContextKey = "currentUsername"
)

// RequireLogin resolves the session identity and loads it into the request
// context, rejecting anonymous requests.
func RequireLogin(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := sessions.Current(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Login required")
		}

		c.Locals(userIDContextKey, identity.UserID)
		c.Locals(usernameContextKey, identity.Username)
		return c.Next()
	}
}

// RequireVerified allows only users whose mobile number has been verified.
// It must run after RequireLogin. This pair is the single enforcement point
// in front of order placement.
func RequireVerified(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Login required")
		}

		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fiber.NewError(fiber.StatusForbidden, "Mobile verification required")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load account")
		}

		if !user.IsVerified {
			return fiber.NewError(fiber.StatusForbidden, "Mobile verification required")
		}

		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(userIDContextKey).(string)
	return id, ok && id != ""
}

// GetCurrentUsername extracts the authenticated username from context.
func GetCurrentUsername(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals(usernameContextKey).(string)
	return name, ok && name != ""
}
