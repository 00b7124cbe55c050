// auth.go - Registration, login, logout and session check handlers

package handlers

import (
	"net/http"

	"go-tree-catalog/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterInput is the body of POST /api/auth/register.
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInput is the body of POST /api/auth/login. Username also accepts an
// email address.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Check reports whether the request carries a valid session, and for whom.
func (h *Handler) Check(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false, "user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"user": gin.H{
			"id":       identity.UserID,
			"username": identity.Username,
			"avatar":   identity.Avatar,
			"role":     identity.Role,
		},
	})
}

// Register creates a new account and logs it in immediately.
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username, email and password are required")
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	user, err := h.users.Register(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.sessions.Create(user)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registration successful"})
}

// Login authenticates by username or email and establishes a session.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	ctx, cancel := h.storageCtx()
	defer cancel()

	user, err := h.users.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.sessions.Create(user)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout destroys the current session, if any. Always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	if token, ok := middleware.Token(c); ok {
		h.sessions.Destroy(token)
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
