// Package session keeps the signed login session and the UI indicator cookies in step.
// File: session/session.go
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"wanderlust/logger"
	"wanderlust/models"
)

// session keys and indicator cookie names
const (
	KeyUser         = "user"
	KeyRole         = "role"
	KeyAdminSession = "adminSession"

	CookieLoggedIn = "loggedIn"
	CookieUsername = "username"
)

// Store writes the signed session and the readable indicator cookies.
// Only the signed session is trusted for identity; the indicators drive page rendering.
type Store struct {
	Secure bool
}

// Establish records user in the session and sets loggedIn="true" and username.
// The indicator cookies carry no expiry and last for the browser session.
func (s Store) Establish(c *gin.Context, user models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(KeyUser, user.Username)
	sess.Set(KeyRole, string(user.Role))
	if err := sess.Save(); err != nil {
		logger.Error.Printf("[session.Establish] failed to save session for %s: %v", user.Username, err)
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieLoggedIn, "true", 0, "/", "", s.Secure, false)
	c.SetCookie(CookieUsername, user.Username, 0, "/", "", s.Secure, false)
	return nil
}

// Clear drops the session and expires both indicator cookies. Clearing an empty session is fine.
func (s Store) Clear(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	err := sess.Save()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieLoggedIn, "", -1, "/", "", s.Secure, false)
	c.SetCookie(CookieUsername, "", -1, "/", "", s.Secure, false)
	return err
}

// Current returns the identity held in the signed session.
func Current(c *gin.Context) (models.Identity, bool) {
	sess := sessions.Default(c)
	username, _ := sess.Get(KeyUser).(string)
	if username == "" {
		return models.Identity{}, false
	}
	role, _ := sess.Get(KeyRole).(string)
	return models.Identity{Username: username, Role: models.Role(role)}, true
}

// Indicators reads the UI cookies. A missing username means logged out whatever loggedIn says.
func Indicators(c *gin.Context) models.Session {
	loggedIn, _ := c.Cookie(CookieLoggedIn)
	username, _ := c.Cookie(CookieUsername)
	if username == "" {
		return models.Session{}
	}
	return models.Session{LoggedIn: loggedIn == "true", Username: username}
}

// AdminSessionID returns the id that keys this browser's admin store, creating one with newID
// on first use.
func AdminSessionID(c *gin.Context, newID func() string) (string, error) {
	sess := sessions.Default(c)
	if id, ok := sess.Get(KeyAdminSession).(string); ok && id != "" {
		return id, nil
	}
	id := newID()
	sess.Set(KeyAdminSession, id)
	return id, sess.Save()
}

// PeekAdminSessionID returns the admin store id without creating one.
func PeekAdminSessionID(c *gin.Context) string {
	id, _ := sessions.Default(c).Get(KeyAdminSession).(string)
	return id
}
