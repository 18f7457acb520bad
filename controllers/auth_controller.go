// Package controllers handles the HTTP side of authentication, pages and administration.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wanderlust/logger"
	"wanderlust/middleware"
	"wanderlust/models"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
)

const MsgLoggedOut = "Logged out successfully"

// TokenIssuer signs bearer tokens handed out on login.
type TokenIssuer interface {
	Issue(user models.User) (string, time.Time, error)
}

// AuthController exchanges credentials for a session and tears it down again.
type AuthController struct {
	AuthService   services.AuthServiceInterface
	Sessions      session.Store
	Tokens        TokenIssuer
	Users         repository.UserRepository
	AdminSessions *services.AdminSessions
}

func NewAuthController(auth services.AuthServiceInterface, store session.Store, tokens TokenIssuer,
	users repository.UserRepository, admins *services.AdminSessions) *AuthController {
	return &AuthController{AuthService: auth, Sessions: store, Tokens: tokens, Users: users, AdminSessions: admins}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginPage renders the login form, or sends an already logged-in user to their profile.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if _, ok := session.Current(c); ok {
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Session": session.Indicators(c)})
}

// Login accepts JSON or a form post. JSON callers get {success, message, token}; form posts
// are redirected on success and shown the form again with the message on failure.
// The session and indicator cookies are written only on success.
func (ac *AuthController) Login(c *gin.Context) {
	asJSON := c.ContentType() == gin.MIMEJSON

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn.Printf("Login: unreadable request: %v", err)
	}

	res, err := ac.AuthService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status := statusFor(err)
		if asJSON {
			c.JSON(status, gin.H{"success": false, "message": res.Message})
			return
		}
		c.HTML(status, "login.html", gin.H{"Error": res.Message, "Username": req.Username})
		return
	}

	// Establish starts a fresh session, dropping any admin store id the old one held
	ac.releaseAdminSession(c)
	if err := ac.Sessions.Establish(c, *res.User); err != nil {
		ac.loginFailed(c, asJSON)
		return
	}

	body := gin.H{"success": true, "message": res.Message}
	if ac.Tokens != nil {
		token, expires, err := ac.Tokens.Issue(*res.User)
		if err != nil {
			logger.Error.Printf("Login: failed to issue token for %s: %v", res.User.Username, err)
		} else {
			body["token"] = token
			body["expiresAt"] = expires
		}
	}

	if asJSON {
		c.JSON(http.StatusOK, body)
		return
	}
	if res.User.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}

func (ac *AuthController) loginFailed(c *gin.Context, asJSON bool) {
	if asJSON {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": services.MsgTryAgain})
		return
	}
	c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": services.MsgTryAgain})
}

// Logout clears the session, both indicator cookies and any admin store. It succeeds even when
// nobody was logged in.
func (ac *AuthController) Logout(c *gin.Context) {
	if id, ok := session.Current(c); ok {
		logger.Info.Printf("Logout: logging out %s", id.Username)
	}
	ac.releaseAdminSession(c)
	if err := ac.Sessions.Clear(c); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": MsgLoggedOut})
}

// releaseAdminSession closes the admin store tied to the current session, if any.
func (ac *AuthController) releaseAdminSession(c *gin.Context) {
	if ac.AdminSessions == nil {
		return
	}
	if adminID := session.PeekAdminSessionID(c); adminID != "" {
		ac.AdminSessions.Release(adminID)
	}
}

// SessionInfo reports the indicator pair alongside the verified identity, if any.
func (ac *AuthController) SessionInfo(c *gin.Context) {
	indicators := session.Indicators(c)
	id, authenticated := session.Current(c)
	c.JSON(http.StatusOK, gin.H{
		"loggedIn":      indicators.LoggedIn,
		"username":      indicators.Username,
		"authenticated": authenticated,
		"role":          id.Role,
	})
}

// Profile renders the logged-in user's profile.
func (ac *AuthController) Profile(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	user, err := ac.Users.FindByUsername(c.Request.Context(), id.Username)
	if errors.Is(err, repository.ErrNotFound) {
		// the account was deleted while the session lived on
		_ = ac.Sessions.Clear(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		logger.Error.Printf("Profile: failed to load %s: %v", id.Username, err)
		c.HTML(http.StatusServiceUnavailable, "profile.html", gin.H{"Error": services.MsgTryAgain, "Session": session.Indicators(c)})
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{"User": user, "Session": session.Indicators(c)})
}
