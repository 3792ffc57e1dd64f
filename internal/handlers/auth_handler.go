package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillworks/quill/internal/auth"
)

// LoginInput DTO for authenticating a user
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the session cookie. Failures are a
// single generic rejection regardless of which factor was wrong.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.IssueSession(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(h.auth.SessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
