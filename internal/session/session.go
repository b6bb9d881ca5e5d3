// Package session maps a cookie-held opaque token to a logged-in identity.
// The token carries no identity itself; everything is resolved server-side
// in the session store.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	userIDKey   = "userId"
	usernameKey = "username"
)

// Identity is the resolved owner of a session.
type Identity struct {
	UserID   string
	Username string
}

// Manager wraps the Fiber session store.
type Manager struct {
	store *session.Store
}

// NewManager builds a Manager with in-process storage and the given
// session lifetime.
func NewManager(ttl time.Duration) *Manager {
	store := session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:msid",
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return &Manager{store: store}
}

// Bind associates the request's session with the given identity,
// issuing the cookie if the client had none.
func (m *Manager) Bind(c *fiber.Ctx, userID, username string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(userIDKey, userID)
	sess.Set(usernameKey, username)
	return sess.Save()
}

// Current resolves the request's identity. The second return is false for
// anonymous requests.
func (m *Manager) Current(c *fiber.Ctx) (Identity, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Identity{}, false
	}

	userID, _ := sess.Get(userIDKey).(string)
	if userID == "" {
		return Identity{}, false
	}

	username, _ := sess.Get(usernameKey).(string)
	return Identity{UserID: userID, Username: username}, true
}

// Destroy invalidates the request's session. Destroying an anonymous
// session is not an error.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
